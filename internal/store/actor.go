package store

import (
	"fmt"
	"math/rand/v2"

	"github.com/manav03panchal/blockstage/internal/block"
)

// Actor defaults.
const (
	DefaultActorSize = 50
	DefaultDirection = 90
	DefaultActorID   = "sprite1"
	DefaultActorName = "Cat"
	spawnSpread      = 100
)

// Costume is one entry of the sprite catalog.
type Costume struct {
	Name  string `yaml:"name" json:"name"`
	Emoji string `yaml:"emoji" json:"emoji"`
}

// Costumes is the built-in sprite catalog.
var Costumes = []Costume{
	{Name: "Cat", Emoji: "🐱"},
	{Name: "Dog", Emoji: "🐶"},
	{Name: "Rabbit", Emoji: "🐰"},
	{Name: "Panda", Emoji: "🐼"},
	{Name: "Fox", Emoji: "🦊"},
	{Name: "Bear", Emoji: "🐻"},
	{Name: "Frog", Emoji: "🐸"},
	{Name: "Monkey", Emoji: "🐵"},
	{Name: "Tiger", Emoji: "🐯"},
}

// NewActor creates a visible actor at the origin with an empty program.
func NewActor(id, name, costume string) Actor {
	return Actor{
		ID:        id,
		Name:      name,
		Direction: DefaultDirection,
		Costume:   costume,
		Visible:   true,
		Width:     DefaultActorSize,
		Height:    DefaultActorSize,
		Blocks:    block.Forest{},
	}
}

// DefaultState returns the initial snapshot: a single active cat.
func DefaultState() State {
	cat := NewActor(DefaultActorID, DefaultActorName, Costumes[0].Emoji)
	return State{
		Actors:        []Actor{cat},
		ActiveActorID: cat.ID,
	}
}

// SpawnActor builds the next actor for the state: a random costume from the
// catalog, a sequential id and name, and a random position near the origin.
// A nil rng uses the package-level source.
func SpawnActor(s State, catalog []Costume, rng *rand.Rand) Actor {
	if len(catalog) == 0 {
		catalog = Costumes
	}
	intn := rand.IntN
	float := rand.Float64
	if rng != nil {
		intn = rng.IntN
		float = rng.Float64
	}

	n := len(s.Actors) + 1
	id := fmt.Sprintf("sprite%d", n)
	for s.indexOf(id) >= 0 {
		n++
		id = fmt.Sprintf("sprite%d", n)
	}

	c := catalog[intn(len(catalog))]
	a := NewActor(id, fmt.Sprintf("%s %d", c.Name, n), c.Emoji)
	a.X = float()*spawnSpread - spawnSpread/2
	a.Y = float()*spawnSpread - spawnSpread/2
	return a
}
