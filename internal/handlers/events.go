package handlers

import (
	"fmt"
	"math"

	"solitaire-go/internal/game"
	"solitaire-go/internal/game/solitaire"
	"solitaire-go/internal/models"
)

const (
	EventPointerDown = "pointer_down"
	EventPointerMove = "pointer_move"
	EventPointerUp   = "pointer_up"
)

// Event is one pointer event as posted by a host window.
type Event struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

func (e Event) Point() solitaire.Point { return solitaire.Point{X: e.X, Y: e.Y} }

func (e Event) Validate() error {
	switch e.Type {
	case EventPointerDown, EventPointerMove, EventPointerUp:
	default:
		return fmt.Errorf("%w: %q", models.ErrUnknownEventType, e.Type)
	}
	for _, v := range []float64{e.X, e.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return models.ErrInvalidCoordinates
		}
	}
	return nil
}

// applyTo dispatches a validated event. Moves report OutcomeNone; the frame
// that follows carries the new held position.
func (e Event) applyTo(g game.Game) solitaire.Outcome {
	switch e.Type {
	case EventPointerDown:
		return g.PointerDown(e.Point())
	case EventPointerUp:
		return g.PointerUp(e.Point())
	default:
		g.PointerMove(e.Point())
		return solitaire.Outcome{Kind: solitaire.OutcomeNone}
	}
}
