package machine

import "testing"

func TestRosterIsValid(t *testing.T) {
	roster := Roster()
	if len(roster) != 3 {
		t.Fatalf("roster has %d machines, want 3", len(roster))
	}
	for _, p := range roster {
		if err := p.Validate(); err != nil {
			t.Errorf("%s: %v", p.Name, err)
		}
	}
	if Default().Name != "Purple Comet" {
		t.Errorf("default machine = %q", Default().Name)
	}
}

func TestRosterReturnsCopy(t *testing.T) {
	a := Roster()
	a[0].MaxSpeed = -1
	if Roster()[0].MaxSpeed < 0 {
		t.Fatal("roster shares its backing array with callers")
	}
}

func TestByName(t *testing.T) {
	p, ok := ByName("faster purple comet")
	if !ok {
		t.Fatal("expected case-insensitive match")
	}
	if p.MaxSpeed <= Default().MaxSpeed {
		t.Errorf("faster variant max speed %g is not above the default %g", p.MaxSpeed, Default().MaxSpeed)
	}
	if _, ok := ByName("blue falcon"); ok {
		t.Error("unexpected match for unknown machine")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"empty name", func(p *Profile) { p.Name = " " }},
		{"negative max speed", func(p *Profile) { p.MaxSpeed = -1 }},
		{"zero max speed", func(p *Profile) { p.MaxSpeed = 0 }},
		{"negative brake", func(p *Profile) { p.Brake = -0.1 }},
		{"boosted below normal", func(p *Profile) { p.BoostedMaxSpeed = p.MaxSpeed - 1 }},
		{"zero energy", func(p *Profile) { p.MaxEnergy = 0 }},
		{"boost costs more than the tank", func(p *Profile) { p.BoostCost = p.MaxEnergy + 1 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Default()
			tc.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"malformed": `[{"name": }]`,
		"empty":     `[]`,
		"duplicate": `[{"name":"A","max_speed":1,"boosted_max_speed":1,"max_energy":1},{"name":"a","max_speed":1,"boosted_max_speed":1,"max_energy":1}]`,
		"invalid":   `[{"name":"A","max_speed":-1,"boosted_max_speed":1,"max_energy":1}]`,
	}
	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode([]byte(payload)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
