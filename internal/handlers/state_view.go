package handlers

import (
	"solitaire-go/internal/game/common"
	"solitaire-go/internal/game/solitaire"
	"solitaire-go/internal/models"
)

type cardView struct {
	// Card is omitted while the card is face down.
	Card   *common.Card   `json:"card,omitempty"`
	FaceUp bool           `json:"face_up"`
	Rect   solitaire.Rect `json:"rect"`
}

type pileView struct {
	ID    solitaire.PileID `json:"id"`
	Role  solitaire.Role   `json:"role"`
	Slot  solitaire.Rect   `json:"slot"`
	Cards []cardView       `json:"cards"`
}

type stateView struct {
	Piles  []pileView       `json:"piles"`
	Held   *pileView        `json:"held,omitempty"`
	Source solitaire.PileID `json:"source,omitempty"`
	Moves  int              `json:"moves"`
	Passes int              `json:"passes"`
	Won    bool             `json:"won"`
}

// TableView is what clients see of a table: its summary and a frame with
// hidden cards left blank.
type TableView struct {
	Table models.Table `json:"table"`
	State stateView    `json:"state"`
}

func buildTableView(info models.Table, snap solitaire.Snapshot) *TableView {
	st := stateView{
		Piles:  make([]pileView, 0, len(snap.Piles)),
		Source: snap.Source,
		Moves:  snap.Moves,
		Passes: snap.Passes,
		Won:    snap.Won,
	}
	for _, p := range snap.Piles {
		st.Piles = append(st.Piles, hidePileView(p))
	}
	if snap.Held != nil {
		held := hidePileView(*snap.Held)
		st.Held = &held
	}
	return &TableView{Table: info, State: st}
}

func hidePileView(p solitaire.PileView) pileView {
	v := pileView{ID: p.ID, Role: p.Role, Slot: p.Slot, Cards: make([]cardView, 0, len(p.Cards))}
	for _, c := range p.Cards {
		cv := cardView{FaceUp: c.FaceUp, Rect: c.Rect}
		if c.FaceUp {
			card := c.Card
			cv.Card = &card
		}
		v.Cards = append(v.Cards, cv)
	}
	return v
}
