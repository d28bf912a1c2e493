// Package block defines the block program model: the tagged block variants,
// their default parameters and the recursive forest shape.
package block

import (
	"github.com/google/uuid"
)

// Kind discriminates the block variants.
type Kind string

const (
	KindMove   Kind = "move"
	KindTurn   Kind = "turn"
	KindGoto   Kind = "goto"
	KindRepeat Kind = "repeat"
	KindSay    Kind = "say"
	KindThink  Kind = "think"
)

// Category groups kinds the way the editor toolbar does.
type Category string

const (
	CategoryMotion  Category = "motion"
	CategoryLooks   Category = "looks"
	CategoryControl Category = "control"
)

// Kinds returns every known kind in toolbar order.
func Kinds() []Kind {
	return []Kind{KindMove, KindTurn, KindGoto, KindSay, KindThink, KindRepeat}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindMove, KindTurn, KindGoto, KindRepeat, KindSay, KindThink:
		return true
	}
	return false
}

// Category returns the toolbar group for the kind.
func (k Kind) Category() Category {
	switch k {
	case KindSay, KindThink:
		return CategoryLooks
	case KindRepeat:
		return CategoryControl
	default:
		return CategoryMotion
	}
}

// Params is the parameter record of a block. Only the fields relevant to
// the block's kind carry meaning.
type Params struct {
	Steps   float64 `json:"steps,omitempty"`
	Degrees float64 `json:"degrees,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Text    string  `json:"text,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
	Times   int     `json:"times,omitempty"`
}

// Patch is a partial parameter record. Nil fields are left untouched by Merge.
type Patch struct {
	Steps   *float64
	Degrees *float64
	X       *float64
	Y       *float64
	Text    *string
	Seconds *float64
	Times   *int
}

// Empty reports whether the patch sets no field.
func (p Patch) Empty() bool {
	return p.Steps == nil && p.Degrees == nil && p.X == nil && p.Y == nil &&
		p.Text == nil && p.Seconds == nil && p.Times == nil
}

// Merge returns p with every non-nil field of patch applied.
func (p Params) Merge(patch Patch) Params {
	if patch.Steps != nil {
		p.Steps = *patch.Steps
	}
	if patch.Degrees != nil {
		p.Degrees = *patch.Degrees
	}
	if patch.X != nil {
		p.X = *patch.X
	}
	if patch.Y != nil {
		p.Y = *patch.Y
	}
	if patch.Text != nil {
		p.Text = *patch.Text
	}
	if patch.Seconds != nil {
		p.Seconds = *patch.Seconds
	}
	if patch.Times != nil {
		p.Times = *patch.Times
	}
	return p
}

// Block is one instruction node. Children is only populated for repeat blocks.
type Block struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"kind"`
	Params   Params `json:"params"`
	Children Forest `json:"children,omitempty"`
}

// Forest is an ordered sequence of blocks. A repeat's children form a
// sub-forest.
type Forest []Block

// IsRepeat reports whether the block may carry children.
func (b Block) IsRepeat() bool {
	return b.Kind == KindRepeat
}

// Defaults returns the default parameters for a kind.
func Defaults(kind Kind) Params {
	switch kind {
	case KindMove:
		return Params{Steps: 10}
	case KindTurn:
		return Params{Degrees: 15}
	case KindGoto:
		return Params{X: 0, Y: 0}
	case KindRepeat:
		return Params{Times: 10}
	case KindSay:
		return Params{Text: "Hello!", Seconds: 2}
	case KindThink:
		return Params{Text: "Hmm...", Seconds: 2}
	default:
		return Params{}
	}
}

// NewID returns a fresh opaque block id. UUID v7 keeps ids time ordered.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// New creates a block of the given kind with a fresh id and default params.
func New(kind Kind) Block {
	return NewWithParams(kind, Defaults(kind))
}

// NewWithParams creates a block with a fresh id and explicit params.
func NewWithParams(kind Kind, params Params) Block {
	b := Block{
		ID:     NewID(),
		Kind:   kind,
		Params: params,
	}
	if kind == KindRepeat {
		b.Children = Forest{}
	}
	return b
}

// NewRepeat creates a repeat block around the given children.
func NewRepeat(times int, children ...Block) Block {
	b := NewWithParams(KindRepeat, Params{Times: times})
	b.Children = append(b.Children, children...)
	return b
}
