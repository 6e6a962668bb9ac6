package game

import "solitaire-go/internal/game/solitaire"

// Game is a pointer-driven table the host can serve. Implementations are not
// safe for concurrent use; the host serializes events per table.
type Game interface {
	Type() string
	PointerDown(p solitaire.Point) solitaire.Outcome
	PointerMove(p solitaire.Point)
	PointerUp(p solitaire.Point) solitaire.Outcome
	Snapshot() solitaire.Snapshot
	CheckInvariants() error
}

var _ Game = (*solitaire.Game)(nil)
