package machine

import (
	_ "embed"
	"encoding/json"
	"math"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Profile holds the tuning parameters of a playable machine. All rates are
// per second; speeds are track units per second.
type Profile struct {
	Name string `json:"name"`

	MaxSpeed            float64 `json:"max_speed"`
	BoostedMaxSpeed     float64 `json:"boosted_max_speed"`
	Acceleration        float64 `json:"acceleration"`
	BoostedAcceleration float64 `json:"boosted_acceleration"`
	Brake               float64 `json:"brake"`
	SpeedLoss           float64 `json:"speed_loss"`
	BoostedSpeedLoss    float64 `json:"boosted_speed_loss"`

	// Centrifugal force grows by CentriIncrease * speed per second of turning.
	CentriIncrease float64 `json:"centri_increase"`
	MaxCentri      float64 `json:"max_centri"`
	CentriDecrease float64 `json:"centri_decrease"`

	// Jump duration in seconds is JumpDurationMultiplier * speed at takeoff.
	JumpDurationMultiplier float64 `json:"jump_duration_multiplier"`
	BoostDuration          float64 `json:"boost_duration"`

	MaxEnergy    float64 `json:"max_energy"`
	BoostCost    float64 `json:"boost_cost"`
	HitCost      float64 `json:"hit_cost"`
	RecoverSpeed float64 `json:"recover_speed"`

	RotationSpeed float64 `json:"rotation_speed"` // radians per second

	// Presentation.
	Livery      [3]uint8 `json:"livery"`
	IdleImage   string   `json:"idle_image,omitempty"`
	ShadowImage string   `json:"shadow_image,omitempty"`
}

// Validate rejects profiles that would break the simulation invariants.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("machine has no name")
	}

	params := []struct {
		name  string
		value float64
	}{
		{"max_speed", p.MaxSpeed},
		{"boosted_max_speed", p.BoostedMaxSpeed},
		{"acceleration", p.Acceleration},
		{"boosted_acceleration", p.BoostedAcceleration},
		{"brake", p.Brake},
		{"speed_loss", p.SpeedLoss},
		{"boosted_speed_loss", p.BoostedSpeedLoss},
		{"centri_increase", p.CentriIncrease},
		{"max_centri", p.MaxCentri},
		{"centri_decrease", p.CentriDecrease},
		{"jump_duration_multiplier", p.JumpDurationMultiplier},
		{"boost_duration", p.BoostDuration},
		{"max_energy", p.MaxEnergy},
		{"boost_cost", p.BoostCost},
		{"hit_cost", p.HitCost},
		{"recover_speed", p.RecoverSpeed},
		{"rotation_speed", p.RotationSpeed},
	}
	for _, param := range params {
		if param.value < 0 || math.IsNaN(param.value) || math.IsInf(param.value, 0) {
			return errors.Errorf("machine %q: %s must be a non-negative number, got %g", p.Name, param.name, param.value)
		}
	}

	if p.MaxSpeed == 0 {
		return errors.Errorf("machine %q: max_speed must be positive", p.Name)
	}
	if p.BoostedMaxSpeed < p.MaxSpeed {
		return errors.Errorf("machine %q: boosted_max_speed %g is below max_speed %g", p.Name, p.BoostedMaxSpeed, p.MaxSpeed)
	}
	if p.MaxEnergy == 0 {
		return errors.Errorf("machine %q: max_energy must be positive", p.Name)
	}
	if p.BoostCost > p.MaxEnergy {
		return errors.Errorf("machine %q: boost_cost %g exceeds max_energy %g", p.Name, p.BoostCost, p.MaxEnergy)
	}
	return nil
}

//go:embed machines.json
var rosterPayload []byte

var (
	rosterOnce sync.Once
	rosterData []Profile
	rosterErr  error
)

// Decode parses and validates a JSON machine roster.
func Decode(payload []byte) ([]Profile, error) {
	var profiles []Profile
	if err := json.Unmarshal(payload, &profiles); err != nil {
		return nil, errors.Wrap(err, "failed to decode machine roster")
	}
	if len(profiles) == 0 {
		return nil, errors.New("machine roster is empty")
	}
	seen := make(map[string]bool, len(profiles))
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		key := strings.ToLower(p.Name)
		if seen[key] {
			return nil, errors.Errorf("duplicate machine %q", p.Name)
		}
		seen[key] = true
	}
	return profiles, nil
}

// Roster returns the playable machines in menu order.
func Roster() []Profile {
	rosterOnce.Do(func() {
		rosterData, rosterErr = Decode(rosterPayload)
	})
	if rosterErr != nil {
		panic(rosterErr)
	}
	out := make([]Profile, len(rosterData))
	copy(out, rosterData)
	return out
}

// Default returns the first machine of the roster.
func Default() Profile {
	return Roster()[0]
}

// ByName finds a machine by case-insensitive name.
func ByName(name string) (Profile, bool) {
	for _, p := range Roster() {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Profile{}, false
}
