package normalize

import "testing"

func TestKey(t *testing.T) {
	cases := map[string]string{
		"Kylian Mbappé":       "kylian mbappe",
		"  Zinédine   ZIDANE ": "zinedine zidane",
		"Ñíguez\tSaúl":        "niguez saul",
		"":                    "",
		" \t\n ":              "",
		"Paris Saint-Germain": "paris saint-germain",
	}
	for in, want := range cases {
		if got := Key(in); got != want {
			t.Fatalf("Key(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKeyIsIdempotent(t *testing.T) {
	inputs := []string{"Kylian Mbappé", "Çağlar Söyüncü", "  Ångström  Ölund ", "İlkay Gündoğan"}
	for _, in := range inputs {
		once := Key(in)
		if twice := Key(once); twice != once {
			t.Fatalf("Key not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal("Kylian Mbappé", "kylian mbappe") {
		t.Fatalf("expected accented and plain spellings to match")
	}
	if Equal("Messi", "Ronaldo") {
		t.Fatalf("expected different names not to match")
	}
}
