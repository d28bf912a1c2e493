// Package parser turns program text into block forests and back.
//
// Statements are separated by ';' or new lines:
//
//	move 10
//	turn -90
//	goto 0 50
//	say "Hello!" 2
//	think "Hmm..." 1.5
//	repeat 4 [ move 20; turn 90 ]
//
// Omitted arguments take the kind's defaults. Every parsed block gets a fresh
// id.
package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/manav03panchal/blockstage/internal/block"
	"github.com/manav03panchal/blockstage/internal/validate"
)

// Parse builds a forest from program text. Empty text yields an empty forest.
func Parse(src string) (block.Forest, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	forest, err := p.statements(false)
	if err != nil {
		return nil, err
	}
	return forest, nil
}

// MustParse is Parse for fixed programs in tests and examples.
func MustParse(src string) block.Forest {
	f, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return f
}

type parser struct {
	src  string
	toks []token
	i    int
}

func (p *parser) peek() token {
	return p.toks[p.i]
}

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) errorf(t token, format string, args ...any) error {
	return newProgramError(p.src, t.pos, format, args...)
}

// statements parses until EOF, or until ']' when nested.
func (p *parser) statements(nested bool) (block.Forest, error) {
	forest := block.Forest{}
	for {
		t := p.peek()
		switch t.kind {
		case tokSep:
			p.next()
			continue
		case tokEOF:
			if nested {
				return nil, p.errorf(t, "missing ']' to close repeat")
			}
			return forest, nil
		case tokClose:
			if !nested {
				return nil, p.errorf(t, "unexpected ']'")
			}
			return forest, nil
		}

		b, err := p.statement()
		if err != nil {
			return nil, err
		}
		forest = append(forest, b)

		switch after := p.peek(); after.kind {
		case tokSep, tokEOF, tokClose:
		default:
			return nil, p.errorf(after, "unexpected %s %q after %s", after.kind, after.text, b.Kind)
		}
	}
}

func (p *parser) statement() (block.Block, error) {
	t := p.next()
	if t.kind != tokWord {
		return block.Block{}, p.errorf(t, "expected a block name, got %s", t.kind)
	}

	kind := block.Kind(t.text)
	if !kind.Valid() {
		return block.Block{}, p.errorf(t, "unknown block %q", t.text)
	}
	params := block.Defaults(kind)

	switch kind {
	case block.KindMove:
		p.optNumber(&params.Steps)
	case block.KindTurn:
		p.optNumber(&params.Degrees)
	case block.KindGoto:
		if p.optNumber(&params.X) && !p.optNumber(&params.Y) {
			return block.Block{}, p.errorf(p.peek(), "goto needs both x and y")
		}
	case block.KindSay, block.KindThink:
		if s := p.peek(); s.kind == tokString {
			p.next()
			params.Text = validate.SanitizeText(s.text)
		}
		if p.optNumber(&params.Seconds) && validate.Seconds(params.Seconds) != nil {
			return block.Block{}, p.errorf(p.toks[p.i-1], "seconds must be between 0 and %d", validate.MaxSeconds)
		}
	case block.KindRepeat:
		return p.repeat(params)
	}
	return block.NewWithParams(kind, params), nil
}

func (p *parser) repeat(params block.Params) (block.Block, error) {
	var times float64
	if p.optNumber(&times) {
		if times != math.Trunc(times) {
			return block.Block{}, p.errorf(p.toks[p.i-1], "repeat count must be a whole number")
		}
		if math.Abs(times) > validate.MaxRepeatTimes {
			return block.Block{}, p.errorf(p.toks[p.i-1], "repeat count must be at most %d", validate.MaxRepeatTimes)
		}
		params.Times = int(times)
	}

	open := p.next()
	if open.kind != tokOpen {
		return block.Block{}, p.errorf(open, "expected '[' after repeat")
	}
	children, err := p.statements(true)
	if err != nil {
		return block.Block{}, err
	}
	p.next() // ]

	b := block.NewWithParams(block.KindRepeat, params)
	b.Children = children
	return b, nil
}

// optNumber consumes a number into dst if one is next.
func (p *parser) optNumber(dst *float64) bool {
	if t := p.peek(); t.kind == tokNumber {
		p.next()
		*dst = t.num
		return true
	}
	return false
}

// Format renders a forest as a single line of program text.
func Format(forest block.Forest) string {
	parts := make([]string, 0, len(forest))
	for _, b := range forest {
		parts = append(parts, FormatBlock(b))
	}
	return strings.Join(parts, "; ")
}

// FormatBlock renders one block, including any children.
func FormatBlock(b block.Block) string {
	p := b.Params
	switch b.Kind {
	case block.KindMove:
		return "move " + num(p.Steps)
	case block.KindTurn:
		return "turn " + num(p.Degrees)
	case block.KindGoto:
		return "goto " + num(p.X) + " " + num(p.Y)
	case block.KindSay, block.KindThink:
		return string(b.Kind) + " " + strconv.Quote(p.Text) + " " + num(p.Seconds)
	case block.KindRepeat:
		if len(b.Children) == 0 {
			return "repeat " + strconv.Itoa(p.Times) + " [ ]"
		}
		return "repeat " + strconv.Itoa(p.Times) + " [ " + Format(b.Children) + " ]"
	default:
		return "# " + string(b.Kind)
	}
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
