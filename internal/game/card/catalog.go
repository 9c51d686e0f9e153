package card

import (
	"errors"
	"fmt"
	"os"

	"github.com/magefree/deckopt-go/internal/game/mana"
	"gopkg.in/yaml.v3"
)

// ErrInvalidTemplate is returned for card definitions whose category tags and
// capabilities would disagree, or that are otherwise malformed.
var ErrInvalidTemplate = errors.New("invalid card template")

// CatalogFile represents the top-level YAML structure of a card definition file.
type CatalogFile struct {
	Cards []Template `yaml:"cards"`
}

// Template is a canonical card definition. Decks are built by instantiating
// templates; templates themselves are shared read-only between games.
type Template struct {
	Name      string `yaml:"name"`
	Types     []Type `yaml:"types"`
	Cost      string `yaml:"cost"`
	Power     *int   `yaml:"power,omitempty"`
	Toughness *int   `yaml:"toughness,omitempty"`
	Produces  string `yaml:"produces,omitempty"`
	Damage    int    `yaml:"damage,omitempty"`

	cost     mana.ManaCost
	produces mana.ManaType
}

func (t *Template) hasType(want Type) bool {
	for _, have := range t.Types {
		if have == want {
			return true
		}
	}
	return false
}

// Validate checks that the template is well formed and resolves its cost and
// produced mana.
func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidTemplate)
	}
	if len(t.Types) == 0 {
		return fmt.Errorf("%w: %s has no types", ErrInvalidTemplate, t.Name)
	}
	for _, typ := range t.Types {
		switch typ {
		case TypeLand, TypeCreature, TypeSpell:
		default:
			return fmt.Errorf("%w: %s has unknown type %q", ErrInvalidTemplate, t.Name, typ)
		}
	}

	cost, err := mana.ParseCost(t.Cost)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidTemplate, t.Name, err)
	}
	t.cost = cost

	hasStats := t.Power != nil || t.Toughness != nil
	switch {
	case t.hasType(TypeCreature) && (t.Power == nil || t.Toughness == nil):
		return fmt.Errorf("%w: creature %s needs power and toughness", ErrInvalidTemplate, t.Name)
	case !t.hasType(TypeCreature) && hasStats:
		return fmt.Errorf("%w: %s has combat stats but is not a creature", ErrInvalidTemplate, t.Name)
	case hasStats && (*t.Power < 0 || *t.Toughness < 0):
		return fmt.Errorf("%w: %s has negative stats", ErrInvalidTemplate, t.Name)
	}

	if t.hasType(TypeLand) {
		if len(t.Types) > 1 {
			return fmt.Errorf("%w: land %s cannot have other types", ErrInvalidTemplate, t.Name)
		}
		if cost.ManaValue() > 0 {
			return fmt.Errorf("%w: land %s cannot have a mana cost", ErrInvalidTemplate, t.Name)
		}
		produces, ok := mana.ParseType(t.Produces)
		if !ok {
			return fmt.Errorf("%w: land %s produces unknown mana %q", ErrInvalidTemplate, t.Name, t.Produces)
		}
		t.produces = produces
	}

	if t.Damage < 0 {
		return fmt.Errorf("%w: %s has negative damage", ErrInvalidTemplate, t.Name)
	}
	return nil
}

// Instantiate creates a fresh card from the template.
func (t *Template) Instantiate() *Card {
	switch {
	case t.hasType(TypeLand):
		return NewLand(t.Name, t.produces)
	case t.hasType(TypeCreature):
		c := NewCreature(t.Name, t.cost, *t.Power, *t.Toughness)
		if t.hasType(TypeSpell) {
			c.addType(TypeSpell)
		}
		return c
	default:
		return NewSpell(t.Name, t.cost, t.Damage)
	}
}

// Catalog holds validated templates split into lands and non-lands.
type Catalog struct {
	Lands    []Template
	Nonlands []Template
}

// NewCatalog validates templates and builds a catalog.
func NewCatalog(templates []Template) (*Catalog, error) {
	catalog := &Catalog{}
	for i := range templates {
		t := templates[i]
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if t.hasType(TypeLand) {
			catalog.Lands = append(catalog.Lands, t)
		} else {
			catalog.Nonlands = append(catalog.Nonlands, t)
		}
	}
	return catalog, nil
}

// ParseCatalog parses YAML card definitions.
func ParseCatalog(data []byte) (*Catalog, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse card YAML: %w", err)
	}
	return NewCatalog(cf.Cards)
}

// LoadCatalog reads card definitions from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read card file: %w", err)
	}
	return ParseCatalog(data)
}

func intPtr(v int) *int { return &v }

// DefaultCatalog is a small mono-green card pool used when no card file is
// configured.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog([]Template{
		{Name: "Forest", Types: []Type{TypeLand}, Produces: "G"},
		{Name: "Llanowar Elves", Types: []Type{TypeCreature}, Cost: "{G}", Power: intPtr(1), Toughness: intPtr(1)},
		{Name: "Grizzly Bears", Types: []Type{TypeCreature}, Cost: "{1}{G}", Power: intPtr(2), Toughness: intPtr(2)},
		{Name: "Trained Armodon", Types: []Type{TypeCreature}, Cost: "{1}{G}{G}", Power: intPtr(3), Toughness: intPtr(3)},
		{Name: "Giant Spider", Types: []Type{TypeCreature}, Cost: "{3}{G}", Power: intPtr(2), Toughness: intPtr(4)},
		{Name: "Craw Wurm", Types: []Type{TypeCreature}, Cost: "{4}{G}{G}", Power: intPtr(6), Toughness: intPtr(4)},
		{Name: "Hurricane", Types: []Type{TypeSpell}, Cost: "{2}{G}", Damage: 2},
	})
	if err != nil {
		// The built-in definitions are static; a failure here is a programming error.
		panic(err)
	}
	return catalog
}

// BuildDeck creates a deck of exactly lands+nonlands fresh cards, taking
// templates round-robin from each half of the catalog. The deck is not shuffled.
func (c *Catalog) BuildDeck(lands, nonlands int) ([]*Card, error) {
	if lands < 0 || nonlands < 0 {
		return nil, fmt.Errorf("invalid deck split %d/%d", lands, nonlands)
	}
	if lands > 0 && len(c.Lands) == 0 {
		return nil, fmt.Errorf("catalog has no land templates")
	}
	if nonlands > 0 && len(c.Nonlands) == 0 {
		return nil, fmt.Errorf("catalog has no non-land templates")
	}

	deck := make([]*Card, 0, lands+nonlands)
	for i := 0; i < lands; i++ {
		deck = append(deck, c.Lands[i%len(c.Lands)].Instantiate())
	}
	for i := 0; i < nonlands; i++ {
		deck = append(deck, c.Nonlands[i%len(c.Nonlands)].Instantiate())
	}
	return deck, nil
}
