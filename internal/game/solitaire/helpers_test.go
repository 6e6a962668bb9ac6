package solitaire

import (
	"testing"

	"solitaire-go/internal/game/common"

	"github.com/stretchr/testify/require"
)

// Deal order puts the top of tableau column i at deck index i*(i+3)/2.
func tableauTopIndex(i int) int { return i * (i + 3) / 2 }

// deckAt builds a full deck with the given cards at fixed indexes and every
// other card filled in standard order.
func deckAt(t *testing.T, fixed map[int]string) []common.Card {
	t.Helper()
	deck := make([]common.Card, 52)
	set := make([]bool, 52)
	used := map[common.Card]bool{}
	for i, s := range fixed {
		c := common.MustParseCard(s)
		require.False(t, used[c], "card %s fixed twice", s)
		deck[i], set[i], used[c] = c, true, true
	}
	rest := common.NewStandardDeck()
	next := 0
	for i := range deck {
		if set[i] {
			continue
		}
		for used[rest[next]] {
			next++
		}
		deck[i] = rest[next]
		next++
	}
	return deck
}

func newTestGame(t *testing.T, fixed map[int]string, rules Rules) *Game {
	t.Helper()
	g, err := NewFromDeck(deckAt(t, fixed), Options{Rules: rules})
	require.NoError(t, err)
	require.NoError(t, g.CheckInvariants())
	return g
}

var grab = Point{X: 10, Y: 10}

// drag presses on the card at from, carries it so its corner lands on to, and
// releases.
func drag(g *Game, from *Card, to Point) (Outcome, Outcome) {
	delta := to.Sub(from.Pos)
	start := from.Pos.Add(grab)
	lifted := g.PointerDown(start)
	g.PointerMove(start.Add(delta.Scale(0.5)))
	return lifted, g.PointerUp(start.Add(delta))
}

func cardsOf(p *Pile) []string {
	out := make([]string, 0, p.Len())
	for _, c := range p.Cards {
		out = append(out, c.String())
	}
	return out
}
