package parser

import (
	"testing"
)

// FuzzParse checks that Parse never panics and that whatever it accepts
// survives a Format round trip.
// Run with: go test ./internal/parser -fuzz=FuzzParse -fuzztime=30s
func FuzzParse(f *testing.F) {
	seeds := []string{
		"move 10",
		"turn -90; goto 0 50",
		`say "Hello!" 2`,
		`think "Hmm..." 1.5`,
		"repeat 4 [ move 20; turn 90 ]",
		"repeat 2 [ repeat 3 [ move 1 ] ]",
		"",
		"[",
		"]",
		`say "unterminated`,
		"move 1e309",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		forest, err := Parse(input)
		if err != nil {
			return
		}
		again, err := Parse(Format(forest))
		if err != nil {
			t.Fatalf("formatted program %q does not parse: %v", Format(forest), err)
		}
		if Format(again) != Format(forest) {
			t.Fatalf("round trip changed %q into %q", Format(forest), Format(again))
		}
	})
}

// FuzzParseSprite checks that sprite specs never panic the parser.
// Run with: go test ./internal/parser -fuzz=FuzzParseSprite -fuzztime=30s
func FuzzParseSprite(f *testing.F) {
	seeds := []string{
		"Dog",
		"Dog@40,-10",
		"Dog@40,-10=move 10",
		"=move 10",
		"@1,2",
		"Dog@x,y",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		spec, err := ParseSprite(input)
		if err == nil && spec.Name == "" {
			t.Fatalf("accepted sprite %q without a name", input)
		}
	})
}
