package validate

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manav03panchal/blockstage/internal/block"
	"github.com/manav03panchal/blockstage/internal/errors"
)

// =============================================================================
// SpriteName Tests
// =============================================================================

func TestSpriteName(t *testing.T) {
	tests := []struct {
		name    string
		sprite  string
		wantErr bool
	}{
		{"simple", "Dog", false},
		{"with_space", "Big Dog", false},
		{"unicode", "Katze 🐱", false},
		{"max_length", strings.Repeat("a", MaxSpriteNameLength), false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too_long", strings.Repeat("a", MaxSpriteNameLength+1), true},
		{"newline", "Dog\nCat", true},
		{"bell", "Dog\a", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SpriteName(tt.sprite)
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrInvalidSprite)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// =============================================================================
// Params Tests
// =============================================================================

func TestParams(t *testing.T) {
	tests := []struct {
		name    string
		params  block.Params
		wantErr bool
	}{
		{"defaults", block.Defaults(block.KindSay), false},
		{"negative_steps", block.Params{Steps: -10}, false},
		{"zero_times", block.Params{Times: 0}, false},
		{"negative_times", block.Params{Times: -3}, false},
		{"max_times", block.Params{Times: MaxRepeatTimes}, false},

		{"nan_steps", block.Params{Steps: math.NaN()}, true},
		{"inf_degrees", block.Params{Degrees: math.Inf(-1)}, true},
		{"inf_x", block.Params{X: math.Inf(1)}, true},
		{"negative_seconds", block.Params{Seconds: -1}, true},
		{"too_many_seconds", block.Params{Seconds: MaxSeconds + 1}, true},
		{"too_many_times", block.Params{Times: MaxRepeatTimes + 1}, true},
		{"long_text", block.Params{Text: strings.Repeat("a", MaxTextLength+1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Params(tt.params)
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrInvalidProgram)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPatch(t *testing.T) {
	assert.NoError(t, Patch(block.Patch{}))

	steps := 5.0
	assert.NoError(t, Patch(block.Patch{Steps: &steps}))

	nan := math.NaN()
	assert.Error(t, Patch(block.Patch{Y: &nan}))

	neg := -0.5
	assert.Error(t, Patch(block.Patch{Seconds: &neg}))

	times := MaxRepeatTimes + 1
	assert.Error(t, Patch(block.Patch{Times: &times}))

	text := strings.Repeat("b", MaxTextLength+1)
	assert.Error(t, Patch(block.Patch{Text: &text}))
}

func TestForestChecksNestedBlocks(t *testing.T) {
	ok := block.Forest{block.NewRepeat(3, block.New(block.KindMove))}
	assert.NoError(t, Forest(ok))

	bad := block.NewWithParams(block.KindTurn, block.Params{Degrees: math.NaN()})
	nested := block.Forest{block.NewRepeat(2, block.New(block.KindMove), bad)}
	assert.ErrorIs(t, Forest(nested), errors.ErrInvalidProgram)

	unknown := block.Forest{{ID: "b1", Kind: "fly"}}
	assert.ErrorIs(t, Forest(unknown), errors.ErrInvalidProgram)
}

// =============================================================================
// NonEmpty / InRange Tests
// =============================================================================

func TestNonEmpty(t *testing.T) {
	assert.NoError(t, NonEmpty("name", "Dog"))
	assert.Error(t, NonEmpty("name", ""))
	assert.Error(t, NonEmpty("name", " \t"))
}

func TestInRange(t *testing.T) {
	assert.NoError(t, InRange("cols", 16, 16, 60))
	assert.NoError(t, InRange("cols", 60, 16, 60))

	err := InRange("cols", 100, 16, 60)
	ue, ok := errors.AsUserError(err)
	if assert.True(t, ok) {
		assert.Equal(t, "Must be between 16 and 60", ue.Suggestion)
		assert.Equal(t, "100", ue.Value)
	}
}

// =============================================================================
// Sanitize Tests
// =============================================================================

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Dog", SanitizeName("  Dog  "))
	assert.Equal(t, "DogCat", SanitizeName("Dog\x00Cat"))
	assert.Equal(t, "", SanitizeName("\t\n"))
}

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Hello!", "Hello!"},
		{"newline", "a\nb", "a b"},
		{"crlf", "a\r\nb", "a b"},
		{"tab", "a\tb", "a b"},
		{"null", "a\x00b", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.input))
		})
	}

	long := SanitizeText(strings.Repeat("x", MaxTextLength+50))
	assert.Equal(t, MaxTextLength, len([]rune(long)))
	assert.True(t, strings.HasSuffix(long, "..."))
}

func TestStripControlChars(t *testing.T) {
	assert.Equal(t, "abc", StripControlChars("a\x00b\x1bc"))
	assert.Equal(t, "a\nb\tc", StripControlChars("a\nb\tc"))
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is long", 8, "this ..."},
		{"abcdef", 3, "abc"},
		{"🐱🐶🐭🐹🐰", 4, "🐱..."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TruncateString(tt.input, tt.maxLen))
	}
}
