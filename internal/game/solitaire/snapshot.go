package solitaire

import "solitaire-go/internal/game/common"

// CardView is one drawable card: identity, face and screen rectangle.
type CardView struct {
	Card   common.Card `json:"card"`
	FaceUp bool        `json:"face_up"`
	Rect   Rect        `json:"rect"`
}

type PileView struct {
	ID    PileID     `json:"id"`
	Role  Role       `json:"role"`
	Slot  Rect       `json:"slot"`
	Cards []CardView `json:"cards"`
}

// Snapshot is everything a host needs to draw a frame. Piles are in draw
// order; Held, when set, is drawn last.
type Snapshot struct {
	Piles  []PileView `json:"piles"`
	Held   *PileView  `json:"held,omitempty"`
	Source PileID     `json:"source,omitempty"`
	Moves  int        `json:"moves"`
	Passes int        `json:"passes"`
	Won    bool       `json:"won"`
}

func viewOf(p *Pile) PileView {
	v := PileView{ID: p.ID, Role: p.Role, Slot: p.SlotRect(), Cards: make([]CardView, 0, p.Len())}
	for _, c := range p.Cards {
		v.Cards = append(v.Cards, CardView{Card: c.Card, FaceUp: c.FaceUp, Rect: c.Rect(p.size)})
	}
	return v
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Moves:  g.moves,
		Passes: g.turns.Passes(),
		Won:    g.Won(),
	}
	for _, p := range g.table.Piles() {
		s.Piles = append(s.Piles, viewOf(p))
	}
	if g.drag.Active() {
		held := viewOf(g.drag.Pile())
		s.Held = &held
		s.Source = g.drag.Source().ID
	}
	return s
}
