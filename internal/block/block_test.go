package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Kind Tests
// =============================================================================

func TestKindValid(t *testing.T) {
	for _, k := range Kinds() {
		assert.True(t, k.Valid(), string(k))
	}
	assert.False(t, Kind("jump").Valid())
	assert.False(t, Kind("").Valid())
}

func TestKindCategory(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected Category
	}{
		{KindMove, CategoryMotion},
		{KindTurn, CategoryMotion},
		{KindGoto, CategoryMotion},
		{KindSay, CategoryLooks},
		{KindThink, CategoryLooks},
		{KindRepeat, CategoryControl},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.Category())
		})
	}
}

// =============================================================================
// Constructor Tests
// =============================================================================

func TestNewDefaults(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected Params
	}{
		{KindMove, Params{Steps: 10}},
		{KindTurn, Params{Degrees: 15}},
		{KindGoto, Params{X: 0, Y: 0}},
		{KindRepeat, Params{Times: 10}},
		{KindSay, Params{Text: "Hello!", Seconds: 2}},
		{KindThink, Params{Text: "Hmm...", Seconds: 2}},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			b := New(tt.kind)
			assert.NotEmpty(t, b.ID)
			assert.Equal(t, tt.kind, b.Kind)
			assert.Equal(t, tt.expected, b.Params)
			if tt.kind == KindRepeat {
				assert.NotNil(t, b.Children)
				assert.Empty(t, b.Children)
			} else {
				assert.Nil(t, b.Children)
			}
		})
	}
}

func TestNewIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New(KindMove).ID
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestParamsMerge(t *testing.T) {
	steps := 25.0
	text := "Hi"
	p := Params{Steps: 10, Text: "Hello!", Seconds: 2}

	merged := p.Merge(Patch{Steps: &steps, Text: &text})
	assert.Equal(t, 25.0, merged.Steps)
	assert.Equal(t, "Hi", merged.Text)
	assert.Equal(t, 2.0, merged.Seconds)

	// Original is a value and stays untouched.
	assert.Equal(t, 10.0, p.Steps)

	assert.True(t, Patch{}.Empty())
	assert.False(t, Patch{Steps: &steps}.Empty())
	assert.Equal(t, p, p.Merge(Patch{}))
}
