package solitaire

import "solitaire-go/internal/game/common"

const (
	TableauCount    = 7
	FoundationCount = 4
)

// Table holds every pile of a Klondike layout.
type Table struct {
	Tableau     [TableauCount]*Pile
	Foundations [FoundationCount]*Pile
	Stock       *Pile
	Waste       *Pile
}

// NewDeck returns the 52 cards shuffled. A nil seed uses the crypto shuffle.
func NewDeck(seed *int64) []common.Card {
	deck := common.NewStandardDeck()
	if seed != nil {
		common.ShuffleWith(deck, common.SeededRNG(*seed))
	} else {
		common.Shuffle(deck)
	}
	return deck
}

func newTable(l Layout) *Table {
	t := &Table{
		Stock: NewPile(StockID, RoleStock, l.StockAnchor(), Point{}, l.CardSize),
		Waste: NewPile(WasteID, RoleWaste, l.WasteAnchor(), Point{}, l.CardSize),
	}
	for i := range t.Tableau {
		t.Tableau[i] = NewPile(TableauID(i), RoleTableau, l.TableauAnchor(i), Point{Y: l.FanStep}, l.CardSize)
	}
	for i := range t.Foundations {
		t.Foundations[i] = NewPile(FoundationID(i), RoleFoundation, l.FoundationAnchor(i), Point{}, l.CardSize)
	}
	return t
}

// Deal lays deck out: tableau column i gets i+1 cards with only its last card
// face up, and the rest of the deck becomes the face-down stock. Cards are
// taken from the front of deck.
func Deal(deck []common.Card, l Layout) *Table {
	t := newTable(l)
	next := 0
	for i, pile := range t.Tableau {
		for j := 0; j <= i; j++ {
			c := newCard(deck[next])
			next++
			c.FaceUp = j == i
			pile.Cards = append(pile.Cards, c)
		}
		pile.Layout()
	}
	for _, dc := range deck[next:] {
		t.Stock.Cards = append(t.Stock.Cards, newCard(dc))
	}
	t.Stock.Layout()
	return t
}

// Piles returns every pile in draw order: stock, waste, foundations, tableau.
func (t *Table) Piles() []*Pile {
	out := make([]*Pile, 0, 2+FoundationCount+TableauCount)
	out = append(out, t.Stock, t.Waste)
	out = append(out, t.Foundations[:]...)
	out = append(out, t.Tableau[:]...)
	return out
}

// dropTargets is the priority order for releases: tableau columns, then foundations.
func (t *Table) dropTargets() []*Pile {
	out := make([]*Pile, 0, TableauCount+FoundationCount)
	out = append(out, t.Tableau[:]...)
	out = append(out, t.Foundations[:]...)
	return out
}

// pressTargets are the piles a drag may start from.
func (t *Table) pressTargets() []*Pile {
	out := make([]*Pile, 0, TableauCount+FoundationCount+1)
	out = append(out, t.Tableau[:]...)
	out = append(out, t.Waste)
	out = append(out, t.Foundations[:]...)
	return out
}
