// Package validate checks user input before it reaches the store: sprite
// names, bubble text and block parameters.
package validate

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/manav03panchal/blockstage/internal/block"
	"github.com/manav03panchal/blockstage/internal/errors"
)

const (
	// MaxSpriteNameLength is the maximum length for a sprite name.
	MaxSpriteNameLength = 32
	// MaxTextLength is the maximum length of a say or think bubble.
	MaxTextLength = 200
	// MaxRepeatTimes bounds a single repeat block.
	MaxRepeatTimes = 10000
	// MaxSeconds bounds how long a bubble stays up.
	MaxSeconds = 3600
)

// SpriteName validates a sprite name.
func SpriteName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewUserError("sprite name cannot be empty", "Provide a sprite name").
			Because(errors.ErrInvalidSprite)
	}
	if utf8.RuneCountInString(name) > MaxSpriteNameLength {
		return errors.NewUserErrorWithField("sprite", name,
			"sprite name too long",
			fmt.Sprintf("Sprite names must be %d characters or fewer", MaxSpriteNameLength)).
			Because(errors.ErrInvalidSprite)
	}
	if StripControlChars(name) != name || strings.ContainsAny(name, "\n\t") {
		return errors.NewUserErrorWithField("sprite", name,
			"sprite name contains control characters",
			"Use letters, numbers and spaces").
			Because(errors.ErrInvalidSprite)
	}
	return nil
}

// Text validates bubble text.
func Text(text string) error {
	if utf8.RuneCountInString(text) > MaxTextLength {
		return invalid("text", "bubble text too long",
			fmt.Sprintf("Bubbles hold %d characters or fewer", MaxTextLength))
	}
	return nil
}

// Params validates a full parameter record.
func Params(p block.Params) error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"steps", p.Steps}, {"degrees", p.Degrees}, {"x", p.X}, {"y", p.Y},
	} {
		if err := Finite(f.name, f.value); err != nil {
			return err
		}
	}
	if err := Seconds(p.Seconds); err != nil {
		return err
	}
	if err := Times(p.Times); err != nil {
		return err
	}
	return Text(p.Text)
}

// Patch validates the fields a patch sets.
func Patch(p block.Patch) error {
	for name, v := range map[string]*float64{
		"steps": p.Steps, "degrees": p.Degrees, "x": p.X, "y": p.Y,
	} {
		if v == nil {
			continue
		}
		if err := Finite(name, *v); err != nil {
			return err
		}
	}
	if p.Seconds != nil {
		if err := Seconds(*p.Seconds); err != nil {
			return err
		}
	}
	if p.Times != nil {
		if err := Times(*p.Times); err != nil {
			return err
		}
	}
	if p.Text != nil {
		return Text(*p.Text)
	}
	return nil
}

// Forest validates every block in a program, including nested ones.
func Forest(forest block.Forest) error {
	var err error
	block.Walk(forest, func(b block.Block) bool {
		if !b.Kind.Valid() {
			err = invalid("kind", fmt.Sprintf("unknown block kind %q", b.Kind),
				errors.GetSuggestion(errors.ErrInvalidProgram))
			return false
		}
		err = Params(b.Params)
		return err == nil
	})
	return err
}

// Finite rejects NaN and infinite values.
func Finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, field+" must be a finite number", "Use a plain number such as 10 or -2.5")
	}
	return nil
}

// Seconds validates a bubble duration.
func Seconds(v float64) error {
	if err := Finite("seconds", v); err != nil {
		return err
	}
	if v < 0 || v > MaxSeconds {
		return invalid("seconds", "seconds out of range",
			fmt.Sprintf("Must be between 0 and %d", MaxSeconds))
	}
	return nil
}

// Times validates a repeat count. Counts of zero or less are allowed and
// run the body zero times.
func Times(n int) error {
	if n > MaxRepeatTimes {
		return invalid("times", "repeat count too large",
			fmt.Sprintf("Repeat at most %d times", MaxRepeatTimes))
	}
	return nil
}

// NonEmpty validates that a string is not empty.
func NonEmpty(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.NewUserError(
			field+" cannot be empty",
			"Provide a value for "+field)
	}
	return nil
}

// InRange validates that an integer is within a range.
func InRange(field string, value, min, max int) error {
	if value < min || value > max {
		return errors.NewUserErrorWithField(field, fmt.Sprint(value),
			"Value out of range",
			fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return nil
}

func invalid(field, message, suggestion string) error {
	return errors.NewUserErrorWithField(field, "", message, suggestion).Because(errors.ErrInvalidProgram)
}
