package solitaire

import "fmt"

// Role selects a pile's layout and which drops it accepts.
type Role string

const (
	RoleTableau    Role = "tableau"
	RoleStock      Role = "stock"
	RoleWaste      Role = "waste"
	RoleFoundation Role = "foundation"
	RoleDrag       Role = "drag"
)

type PileID string

const (
	StockID PileID = "stock"
	WasteID PileID = "waste"
	DragID  PileID = "drag"
)

func TableauID(i int) PileID    { return PileID(fmt.Sprintf("tableau-%d", i)) }
func FoundationID(i int) PileID { return PileID(fmt.Sprintf("foundation-%d", i)) }

// Pile is an ordered stack of cards. Index 0 is the bottom, the last card is
// the top and is drawn frontmost.
type Pile struct {
	ID     PileID
	Role   Role
	Anchor Point

	// Spacing is the offset between consecutive cards; zero stacks every card
	// on the anchor.
	Spacing Point

	size  Size
	Cards []*Card
}

func NewPile(id PileID, role Role, anchor, spacing Point, size Size) *Pile {
	return &Pile{
		ID:      id,
		Role:    role,
		Anchor:  anchor,
		Spacing: spacing,
		size:    size,
		Cards:   []*Card{},
	}
}

func (p *Pile) Len() int    { return len(p.Cards) }
func (p *Pile) Empty() bool { return len(p.Cards) == 0 }

// Top returns the frontmost card, or nil if the pile is empty.
func (p *Pile) Top() *Card {
	if len(p.Cards) == 0 {
		return nil
	}
	return p.Cards[len(p.Cards)-1]
}

// Layout places card i at Anchor + i*Spacing and refreshes Draggable flags.
// Drag piles keep the positions their cards were translated to.
func (p *Pile) Layout() {
	last := len(p.Cards) - 1
	for i, c := range p.Cards {
		if p.Role != RoleDrag {
			c.Pos = p.Anchor.Add(p.Spacing.Scale(float64(i)))
		}
		switch p.Role {
		case RoleTableau:
			c.Draggable = c.FaceUp
		case RoleWaste, RoleFoundation:
			c.Draggable = c.FaceUp && i == last
		case RoleStock:
			c.Draggable = false
		}
	}
}

// HitTest returns the index of the topmost card containing pt.
func (p *Pile) HitTest(pt Point) (int, bool) {
	for i := len(p.Cards) - 1; i >= 0; i-- {
		if p.Cards[i].Rect(p.size).Contains(pt) {
			return i, true
		}
	}
	return -1, false
}

// SplitAt removes and returns Cards[index:], leaving the prefix in place.
// An out of range index returns nil and leaves the pile untouched.
func (p *Pile) SplitAt(index int) []*Card {
	if index < 0 || index >= len(p.Cards) {
		return nil
	}
	run := make([]*Card, len(p.Cards)-index)
	copy(run, p.Cards[index:])
	for i := index; i < len(p.Cards); i++ {
		p.Cards[i] = nil
	}
	p.Cards = p.Cards[:index]
	p.Layout()
	return run
}

// Extend appends cards on top in order and lays the pile out again.
func (p *Pile) Extend(cards []*Card) {
	if len(cards) == 0 {
		return
	}
	p.Cards = append(p.Cards, cards...)
	p.Layout()
}

// SlotRect is the rectangle of an empty pile: one card at the anchor.
func (p *Pile) SlotRect() Rect {
	return RectAt(p.Anchor, p.size)
}

// TopRect is the drop target of the pile: the top card, or the slot if empty.
func (p *Pile) TopRect() Rect {
	if top := p.Top(); top != nil {
		return top.Rect(p.size)
	}
	return p.SlotRect()
}

func (p *Pile) CardSize() Size { return p.size }
