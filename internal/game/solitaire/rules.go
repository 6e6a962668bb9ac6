package solitaire

import (
	"fmt"

	"solitaire-go/internal/game/common"
)

// EmptyTableauPolicy decides which runs an empty tableau column accepts.
type EmptyTableauPolicy string

const (
	EmptyTableauKingOnly EmptyTableauPolicy = "king"
	EmptyTableauAny      EmptyTableauPolicy = "any"
)

// Rules captures the configurable parts of the game.
type Rules struct {
	// MaxPasses limits trips through the stock. 0 means unlimited.
	MaxPasses    int                `json:"max_passes"`
	EmptyTableau EmptyTableauPolicy `json:"empty_tableau"`
}

func DefaultRules() Rules {
	return Rules{MaxPasses: 0, EmptyTableau: EmptyTableauKingOnly}
}

func (r Rules) Validate() error {
	if r.MaxPasses < 0 {
		return fmt.Errorf("max passes must be >= 0, got %d", r.MaxPasses)
	}
	switch r.EmptyTableau {
	case EmptyTableauKingOnly, EmptyTableauAny:
	default:
		return fmt.Errorf("unknown empty tableau policy %q", r.EmptyTableau)
	}
	return nil
}

// CanStackOnTableau is the tableau drop rule: alternating color, one rank lower.
func CanStackOnTableau(held, dest common.Card) bool {
	return held.Color() != dest.Color() && dest.Rank == held.Rank+1
}

// CanPlaceOnFoundation builds foundations up by suit from the ace. top is nil
// for an empty foundation.
func CanPlaceOnFoundation(card common.Card, top *common.Card) bool {
	if top == nil {
		return card.Rank == common.Ace
	}
	return card.Suit == top.Suit && card.Rank == top.Rank+1
}

// accepts applies the rule test for dropping run onto dest. Geometry is
// checked by the caller.
func (r Rules) accepts(dest *Pile, run []*Card) bool {
	if len(run) == 0 {
		return false
	}
	bottom := run[0].Card
	switch dest.Role {
	case RoleTableau:
		top := dest.Top()
		if top == nil {
			return r.EmptyTableau == EmptyTableauAny || bottom.Rank == common.King
		}
		return top.FaceUp && CanStackOnTableau(bottom, top.Card)
	case RoleFoundation:
		if len(run) != 1 {
			return false
		}
		if top := dest.Top(); top != nil {
			return CanPlaceOnFoundation(bottom, &top.Card)
		}
		return CanPlaceOnFoundation(bottom, nil)
	default:
		return false
	}
}
