package solitaire

// DragSession is the run of cards under the cursor. It is idle until Begin
// lifts a run and returns to idle on Release; there is no cancel.
type DragSession struct {
	held   *Pile
	source *Pile
	last   Point
}

func NewDragSession(size Size) *DragSession {
	return &DragSession{held: NewPile(DragID, RoleDrag, Point{}, Point{}, size)}
}

func (s *DragSession) Active() bool { return s.source != nil }

// Source is the pile the held run came from, nil when idle.
func (s *DragSession) Source() *Pile { return s.source }

func (s *DragSession) Pile() *Pile { return s.held }

func (s *DragSession) Held() []*Card { return s.held.Cards }

// Begin lifts src.Cards[index:] if the card at index may be dragged. It is a
// no-op while another run is held.
func (s *DragSession) Begin(src *Pile, index int, cursor Point) bool {
	if s.Active() || index < 0 || index >= src.Len() {
		return false
	}
	c := src.Cards[index]
	if !c.Draggable || !c.FaceUp {
		return false
	}
	run := src.SplitAt(index)
	s.held.Anchor = run[0].Pos
	s.held.Spacing = src.Spacing
	s.held.Extend(run)
	s.source = src
	s.last = cursor
	return true
}

// Move translates every held card by the cursor delta since the last event.
func (s *DragSession) Move(cursor Point) {
	if !s.Active() {
		return
	}
	delta := cursor.Sub(s.last)
	for _, c := range s.held.Cards {
		c.Pos = c.Pos.Add(delta)
	}
	s.held.Anchor = s.held.Anchor.Add(delta)
	s.last = cursor
}

// Release drops the held run on the first candidate that both overlaps the
// run's bottom card and accepts it under rules. When none does the run goes
// back on top of its source. On a successful move from a tableau column the
// column's new top card is turned face up.
func (s *DragSession) Release(candidates []*Pile, rules Rules) Outcome {
	if !s.Active() {
		return Outcome{Kind: OutcomeNone}
	}
	src := s.source
	run := s.held.SplitAt(0)
	s.source = nil

	out := Outcome{Source: src.ID, Cards: len(run)}
	bottom := run[0].Rect(s.held.size)
	for _, dest := range candidates {
		if dest == src || !bottom.Overlaps(dest.TopRect()) || !rules.accepts(dest, run) {
			continue
		}
		dest.Extend(run)
		out.Kind = OutcomeMoved
		out.Dest = dest.ID
		if src.Role == RoleTableau {
			if top := src.Top(); top != nil && !top.FaceUp {
				top.Flip()
				src.Layout()
				out.Revealed = true
			}
		}
		return out
	}

	src.Extend(run)
	out.Kind = OutcomeReturned
	out.Dest = src.ID
	return out
}
