package race

import (
	_ "embed"
	"encoding/json"
	"strings"
	"sync"

	"github.com/golangdaddy/mode7racer/pkg/track"
	"github.com/pkg/errors"
)

// League is an ordered sequence of races played one after another.
type League struct {
	name    string
	races   []*Race
	current int
}

// NewLeague creates a league positioned on its first race.
func NewLeague(name string, races []*Race) (*League, error) {
	if len(races) == 0 {
		return nil, errors.Errorf("league %q has no races", name)
	}
	return &League{name: name, races: races}, nil
}

// Name returns the league name
func (l *League) Name() string {
	return l.name
}

// Len returns the number of races in the league.
func (l *League) Len() int {
	return len(l.races)
}

// Races returns the races in play order.
func (l *League) Races() []*Race {
	return append([]*Race(nil), l.races...)
}

// Index returns the position of the current race.
func (l *League) Index() int {
	return l.current
}

// CurrentRace returns the race being played, or nil once the league is completed.
func (l *League) CurrentRace() *Race {
	if l.IsCompleted() {
		return nil
	}
	return l.races[l.current]
}

// NextRace advances to the following race. ok is false when the league has
// no more races.
func (l *League) NextRace() (r *Race, ok bool) {
	if l.current < len(l.races) {
		l.current++
	}
	if l.IsCompleted() {
		return nil, false
	}
	return l.races[l.current], true
}

// IsCompleted reports whether every race has been played.
func (l *League) IsCompleted() bool {
	return l.current >= len(l.races)
}

// Reset goes back to the first race.
func (l *League) Reset() {
	l.current = 0
}

// GameMode selects how races are sequenced.
type GameMode int

const (
	LeagueMode GameMode = iota
	SingleRaceMode
)

func (m GameMode) String() string {
	if m == SingleRaceMode {
		return "single"
	}
	return "league"
}

// ParseGameMode parses "league" or "single".
func ParseGameMode(s string) (GameMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "league", "":
		return LeagueMode, nil
	case "single", "single-race", "single_race":
		return SingleRaceMode, nil
	}
	return 0, errors.Errorf("unknown game mode %q", s)
}

// LeagueDefinition is the static description of a league.
type LeagueDefinition struct {
	Name  string       `json:"name"`
	Races []Definition `json:"races"`
}

// Catalog lists every league and every race offered in single race mode.
// Without single_races every built-in track is offered once.
type Catalog struct {
	Leagues     []LeagueDefinition `json:"leagues"`
	SingleRaces []Definition       `json:"single_races,omitempty"`
}

// SingleRaceLaps is the lap count of races derived from the built-in tracks.
const SingleRaceLaps = 3

// trackRaces offers one time attack per built-in track, in lexical order.
func trackRaces() []Definition {
	ids := track.BuiltinIDs()
	defs := make([]Definition, 0, len(ids))
	for _, id := range ids {
		defs = append(defs, Definition{
			Track:             id,
			FloorTexture:      "gfx/" + id + ".png",
			BackgroundTexture: "gfx/" + id + "_bg.png",
			RequiredLaps:      SingleRaceLaps,
			Mode:              TimeAttack.String(),
		})
	}
	return defs
}

//go:embed leagues.json
var catalogPayload []byte

var (
	catalogOnce sync.Once
	catalogData Catalog
	catalogErr  error
)

// DecodeCatalog parses a JSON catalog and checks every race can be built.
func DecodeCatalog(payload []byte) (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(payload, &c); err != nil {
		return Catalog{}, errors.Wrap(err, "failed to decode league catalog")
	}
	if len(c.Leagues) == 0 {
		return Catalog{}, errors.New("league catalog has no leagues")
	}
	for _, ld := range c.Leagues {
		if _, err := ld.Build(); err != nil {
			return Catalog{}, err
		}
	}
	if len(c.SingleRaces) == 0 {
		c.SingleRaces = trackRaces()
	}
	for i, def := range c.SingleRaces {
		if _, err := NewRace(def); err != nil {
			return Catalog{}, errors.Wrapf(err, "single race %d", i)
		}
	}
	return c, nil
}

// Builtin returns the embedded catalog.
func Builtin() Catalog {
	catalogOnce.Do(func() {
		catalogData, catalogErr = DecodeCatalog(catalogPayload)
	})
	if catalogErr != nil {
		panic(catalogErr)
	}
	return catalogData
}

// Leagues returns the embedded league definitions.
func Leagues() []LeagueDefinition {
	return Builtin().Leagues
}

// Build creates fresh races for every definition of the league.
func (ld LeagueDefinition) Build() (*League, error) {
	races := make([]*Race, 0, len(ld.Races))
	for i, def := range ld.Races {
		r, err := NewRace(def)
		if err != nil {
			return nil, errors.Wrapf(err, "league %q race %d", ld.Name, i)
		}
		races = append(races, r)
	}
	return NewLeague(ld.Name, races)
}

// Select builds the league played in a game mode. In league mode index picks
// the league; in single race mode it picks the race, wrapped in a one-race league.
func (c Catalog) Select(mode GameMode, index int) (*League, error) {
	switch mode {
	case SingleRaceMode:
		if index < 0 || index >= len(c.SingleRaces) {
			return nil, errors.Errorf("single race %d out of range [0, %d)", index, len(c.SingleRaces))
		}
		r, err := NewRace(c.SingleRaces[index])
		if err != nil {
			return nil, err
		}
		return NewLeague(r.Name(), []*Race{r})
	default:
		if index < 0 || index >= len(c.Leagues) {
			return nil, errors.Errorf("league %d out of range [0, %d)", index, len(c.Leagues))
		}
		return c.Leagues[index].Build()
	}
}
