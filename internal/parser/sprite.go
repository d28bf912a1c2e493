package parser

import (
	"strconv"
	"strings"

	"github.com/manav03panchal/blockstage/internal/block"
	"github.com/manav03panchal/blockstage/internal/errors"
	"github.com/manav03panchal/blockstage/internal/validate"
)

// SpriteSpec describes an extra sprite given on the command line as
// NAME[@X,Y][=PROGRAM].
type SpriteSpec struct {
	Name    string
	X, Y    float64
	HasPos  bool
	Program block.Forest
}

// ParseSprite parses a sprite specification such as "Dog@40,-10=move 10".
func ParseSprite(s string) (SpriteSpec, error) {
	var spec SpriteSpec

	head, program, hasProgram := strings.Cut(s, "=")
	name, pos, hasPos := strings.Cut(head, "@")
	spec.Name = validate.SanitizeName(name)
	if spec.Name == "" {
		return spec, errors.NewUserErrorWithField("sprite", s, "sprite name is required",
			"Use NAME[@X,Y]=PROGRAM, e.g. Dog@40,0=move 10").Because(errors.ErrInvalidSprite)
	}
	if err := validate.SpriteName(spec.Name); err != nil {
		return spec, err
	}

	if hasPos {
		xs, ys, ok := strings.Cut(pos, ",")
		x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if !ok || errX != nil || errY != nil {
			return spec, errors.NewUserErrorWithField("sprite", s, "sprite position must be X,Y",
				"Use NAME@X,Y, e.g. Dog@40,-10").Because(errors.ErrInvalidSprite)
		}
		spec.X, spec.Y, spec.HasPos = x, y, true
	}

	spec.Program = block.Forest{}
	if hasProgram {
		forest, err := Parse(program)
		if err != nil {
			return spec, err
		}
		spec.Program = forest
	}
	return spec, nil
}
