package relic

import "testing"

func TestValidateTables(t *testing.T) {
	if err := ValidateTables(); err != nil {
		t.Fatalf("ValidateTables() error: %v", err)
	}
}

func TestLookupItemNamed(t *testing.T) {
	name, color, ok := LookupItem(20001)
	if !ok {
		t.Fatal("LookupItem(20001) not found")
	}
	if name != "Old Pocketwatch" {
		t.Errorf("name = %q, want Old Pocketwatch", name)
	}
	if color != Red {
		t.Errorf("color = %s, want Red", color)
	}
}

func TestLookupItemSceneNames(t *testing.T) {
	tests := []struct {
		id       int
		wantName string
		wantCol  Color
	}{
		{10003, "Grand Burning Scene", Red},
		{10009, "Delicate Drizzly Scene", Blue},
		{10019, "Polished Luminous Scene", Yellow},
		{10029, "Grand Tranquil Scene", Green},
		{30340, "Deep Grand Tranquil Scene", DeepGreen},
		{30040, "Deep Grand Burning Scene", DeepRed},
	}
	for _, tt := range tests {
		name, color, ok := LookupItem(tt.id)
		if !ok {
			t.Errorf("LookupItem(%d) not found", tt.id)
			continue
		}
		if name != tt.wantName {
			t.Errorf("LookupItem(%d) name = %q, want %q", tt.id, name, tt.wantName)
		}
		if color != tt.wantCol {
			t.Errorf("LookupItem(%d) color = %s, want %s", tt.id, color, tt.wantCol)
		}
	}
}

func TestLookupItemMissing(t *testing.T) {
	if _, _, ok := LookupItem(424242); ok {
		t.Error("LookupItem(424242) should not be found")
	}
}

func TestLookupEffect(t *testing.T) {
	eff, ok := LookupEffect(7000001)
	if !ok {
		t.Fatal("LookupEffect(7000001) not found")
	}
	if eff.Name != "Improved Critical Hits" || eff.Level != 1 {
		t.Errorf("effect = %q level %d, want Improved Critical Hits level 1", eff.Name, eff.Level)
	}

	eff, ok = LookupEffect(7000000)
	if !ok {
		t.Fatal("LookupEffect(7000000) not found")
	}
	if eff.Level != 0 {
		t.Errorf("base effect level = %d, want 0", eff.Level)
	}

	eff, ok = LookupEffect(7000213)
	if !ok {
		t.Fatal("LookupEffect(7000213) not found")
	}
	if eff.Name != "Vigor" || eff.Level != 3 {
		t.Errorf("effect = %q level %d, want Vigor level 3", eff.Name, eff.Level)
	}

	if _, ok := LookupEffect(999); ok {
		t.Error("LookupEffect(999) should not be found")
	}
}

func TestParseEffectName(t *testing.T) {
	tests := []struct {
		in        string
		wantName  string
		wantLevel int
	}{
		{"Improved Critical Hits +2", "Improved Critical Hits", 2},
		{"Improved Critical Hits", "Improved Critical Hits", 0},
		{"Vigor +3", "Vigor", 3},
		{"Strange +name", "Strange +name", 0},
		{"A +1 +2", "A +1", 2},
	}
	for _, tt := range tests {
		name, level := ParseEffectName(tt.in)
		if name != tt.wantName || level != tt.wantLevel {
			t.Errorf("ParseEffectName(%q) = (%q, %d), want (%q, %d)",
				tt.in, name, level, tt.wantName, tt.wantLevel)
		}
	}
}

func TestEffectString(t *testing.T) {
	e := Effect{ID: 7000212, Name: "Vigor", Level: 2}
	if got := e.String(); got != "Vigor +2" {
		t.Errorf("String() = %q, want Vigor +2", got)
	}

	e = Effect{ID: 7000170, Name: "HP Restoration upon Attacks"}
	if got := e.String(); got != "HP Restoration upon Attacks" {
		t.Errorf("String() = %q", got)
	}

	e = Effect{ID: 123}
	if got := e.String(); got != "unknown effect 123" {
		t.Errorf("String() = %q, want unknown effect 123", got)
	}
}
