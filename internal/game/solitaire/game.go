package solitaire

import (
	"errors"
	"fmt"

	"solitaire-go/internal/game/common"
)

// GameType is the registry key for Klondike tables.
const GameType = "klondike"

type OutcomeKind string

const (
	OutcomeNone     OutcomeKind = "none"
	OutcomeLifted   OutcomeKind = "lifted"
	OutcomeDrew     OutcomeKind = "drew"
	OutcomeRecycled OutcomeKind = "recycled"
	OutcomeMoved    OutcomeKind = "moved"
	OutcomeReturned OutcomeKind = "returned"
)

// Outcome reports what a pointer event did. Illegal drops and presses that
// hit nothing are ordinary outcomes, not errors.
type Outcome struct {
	Kind     OutcomeKind `json:"kind"`
	Source   PileID      `json:"source,omitempty"`
	Dest     PileID      `json:"dest,omitempty"`
	Cards    int         `json:"cards,omitempty"`
	Revealed bool        `json:"revealed,omitempty"`
}

type Options struct {
	// Seed fixes the shuffle; nil shuffles from crypto/rand.
	Seed   *int64
	Rules  Rules
	Layout Layout
}

// Game is the controller for one table. It is not safe for concurrent use;
// callers feed it one event at a time.
type Game struct {
	rules  Rules
	layout Layout
	seed   *int64

	table *Table
	drag  *DragSession
	turns *TurnController
	moves int
}

func New(opts Options) (*Game, error) {
	var seed *int64
	if opts.Seed != nil {
		s := *opts.Seed
		seed = &s
	}
	g, err := NewFromDeck(NewDeck(seed), opts)
	if err != nil {
		return nil, err
	}
	g.seed = seed
	return g, nil
}

// NewFromDeck deals deck in the given order. deck must hold each of the 52
// cards exactly once.
func NewFromDeck(deck []common.Card, opts Options) (*Game, error) {
	if opts.Rules == (Rules{}) {
		opts.Rules = DefaultRules()
	}
	if err := opts.Rules.Validate(); err != nil {
		return nil, err
	}
	if err := validateDeck(deck); err != nil {
		return nil, err
	}
	l := opts.Layout.withDefaults()
	t := Deal(deck, l)
	return &Game{
		rules:  opts.Rules,
		layout: l,
		table:  t,
		drag:   NewDragSession(l.CardSize),
		turns:  NewTurnController(t.Stock, t.Waste, opts.Rules.MaxPasses),
	}, nil
}

func validateDeck(deck []common.Card) error {
	if len(deck) != 52 {
		return fmt.Errorf("deck has %d cards, want 52", len(deck))
	}
	seen := make(map[common.Card]bool, 52)
	for _, c := range deck {
		if !c.Rank.Valid() || !c.Suit.Valid() {
			return fmt.Errorf("invalid card %v", c)
		}
		if seen[c] {
			return fmt.Errorf("duplicate card %s", c)
		}
		seen[c] = true
	}
	return nil
}

func (g *Game) Type() string       { return GameType }
func (g *Game) Rules() Rules       { return g.rules }
func (g *Game) Layout() Layout     { return g.layout }
func (g *Game) Table() *Table      { return g.table }
func (g *Game) Drag() *DragSession { return g.drag }
func (g *Game) Moves() int         { return g.moves }
func (g *Game) Passes() int        { return g.turns.Passes() }

// Seed returns the shuffle seed, if the deal was seeded.
func (g *Game) Seed() (int64, bool) {
	if g.seed == nil {
		return 0, false
	}
	return *g.seed, true
}

// Pile looks a pile up by id, including the drag pile.
func (g *Game) Pile(id PileID) *Pile {
	if id == DragID {
		return g.drag.Pile()
	}
	for _, p := range g.table.Piles() {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PointerDown turns the stock when the press lands on it, otherwise lifts the
// topmost draggable card under p along with everything stacked on it.
func (g *Game) PointerDown(p Point) Outcome {
	if g.drag.Active() {
		return Outcome{Kind: OutcomeNone}
	}
	stock := g.table.Stock
	if stock.TopRect().Contains(p) {
		kind := g.turns.Turn()
		if kind == OutcomeNone {
			return Outcome{Kind: OutcomeNone}
		}
		g.moves++
		return Outcome{Kind: kind, Source: stock.ID, Dest: g.table.Waste.ID}
	}
	// A custom layout may stack piles, so a refused hit falls through to the
	// piles after it.
	for _, pile := range g.table.pressTargets() {
		i, ok := pile.HitTest(p)
		if !ok {
			continue
		}
		if g.drag.Begin(pile, i, p) {
			return Outcome{Kind: OutcomeLifted, Source: pile.ID, Cards: g.drag.Pile().Len()}
		}
	}
	return Outcome{Kind: OutcomeNone}
}

func (g *Game) PointerMove(p Point) {
	g.drag.Move(p)
}

// PointerUp ends the drag, if any. p is not needed to resolve the drop since
// the held cards already sit where the last move put them.
func (g *Game) PointerUp(p Point) Outcome {
	if !g.drag.Active() {
		return Outcome{Kind: OutcomeNone}
	}
	g.drag.Move(p)
	out := g.drag.Release(g.table.dropTargets(), g.rules)
	if out.Kind == OutcomeMoved {
		g.moves++
	}
	return out
}

// Won reports whether every foundation holds a full suit.
func (g *Game) Won() bool {
	for _, f := range g.table.Foundations {
		if f.Len() != int(common.King) {
			return false
		}
	}
	return true
}

// ErrInvariant wraps every failure reported by CheckInvariants.
var ErrInvariant = errors.New("solitaire: invariant violated")

// CheckInvariants verifies card conservation and face-up ordering.
func (g *Game) CheckInvariants() error {
	seen := make(map[common.Card]PileID, 52)
	piles := append(g.table.Piles(), g.drag.Pile())
	for _, p := range piles {
		for i, c := range p.Cards {
			if prev, dup := seen[c.Card]; dup {
				return fmt.Errorf("%w: %s in both %s and %s", ErrInvariant, c.Card, prev, p.ID)
			}
			seen[c.Card] = p.ID
			switch p.Role {
			case RoleTableau:
				if !c.FaceUp && i > 0 && p.Cards[i-1].FaceUp {
					return fmt.Errorf("%w: face-down %s above face-up card in %s", ErrInvariant, c.Card, p.ID)
				}
			case RoleStock:
				if c.FaceUp {
					return fmt.Errorf("%w: face-up %s in stock", ErrInvariant, c.Card)
				}
			case RoleWaste, RoleFoundation:
				if !c.FaceUp {
					return fmt.Errorf("%w: face-down %s in %s", ErrInvariant, c.Card, p.ID)
				}
			}
		}
	}
	if len(seen) != 52 {
		return fmt.Errorf("%w: %d cards on the table, want 52", ErrInvariant, len(seen))
	}
	if g.drag.Active() == g.drag.Pile().Empty() {
		return fmt.Errorf("%w: drag session active=%t with %d held cards", ErrInvariant, g.drag.Active(), g.drag.Pile().Len())
	}
	return nil
}
