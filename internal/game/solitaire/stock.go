package solitaire

// TurnController deals from the stock to the waste and turns the waste over
// when the stock runs out.
type TurnController struct {
	stock     *Pile
	waste     *Pile
	maxPasses int
	passes    int
}

func NewTurnController(stock, waste *Pile, maxPasses int) *TurnController {
	return &TurnController{stock: stock, waste: waste, maxPasses: maxPasses, passes: 1}
}

// Passes counts trips through the stock, starting at 1 for the deal.
func (t *TurnController) Passes() int { return t.passes }

// Turn draws one card, or recycles the waste when the stock is empty.
func (t *TurnController) Turn() OutcomeKind {
	if t.Draw() {
		return OutcomeDrew
	}
	if t.Recycle() {
		return OutcomeRecycled
	}
	return OutcomeNone
}

// Draw moves the stock's top card face up onto the waste.
func (t *TurnController) Draw() bool {
	if t.stock.Empty() {
		return false
	}
	run := t.stock.SplitAt(t.stock.Len() - 1)
	run[0].FaceUp = true
	t.waste.Extend(run)
	return true
}

// Recycle turns the whole waste back into the stock, reversed and face down.
// It refuses when the stock still has cards, the waste is empty, or the pass
// limit has been reached.
func (t *TurnController) Recycle() bool {
	if !t.stock.Empty() || t.waste.Empty() {
		return false
	}
	if t.maxPasses > 0 && t.passes >= t.maxPasses {
		return false
	}
	run := t.waste.SplitAt(0)
	for i, j := 0, len(run)-1; i < j; i, j = i+1, j-1 {
		run[i], run[j] = run[j], run[i]
	}
	for _, c := range run {
		c.FaceUp = false
	}
	t.stock.Extend(run)
	t.passes++
	return true
}
