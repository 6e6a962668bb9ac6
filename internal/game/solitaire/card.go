package solitaire

import "solitaire-go/internal/game/common"

// Card is a playing card on the table. Pos is owned by the pile holding the
// card and is rewritten on every layout, except while the card is held by a
// drag session.
type Card struct {
	common.Card

	FaceUp    bool
	Draggable bool
	Pos       Point
}

func newCard(c common.Card) *Card {
	return &Card{Card: c}
}

// Flip toggles visibility only.
func (c *Card) Flip() {
	c.FaceUp = !c.FaceUp
}

func (c *Card) Rect(size Size) Rect {
	return RectAt(c.Pos, size)
}
