package solitaire

// Layout fixes where each pile sits on a 1300x750 table.
type Layout struct {
	CardSize    Size    `json:"card_size"`
	Margin      float64 `json:"margin"`
	ColumnPitch float64 `json:"column_pitch"`
	TableauTop  float64 `json:"tableau_top"`
	FanStep     float64 `json:"fan_step"`
}

func DefaultLayout() Layout {
	return Layout{
		CardSize:    Size{W: 110, H: 160},
		Margin:      40,
		ColumnPitch: 160,
		TableauTop:  240,
		FanStep:     24,
	}
}

func (l Layout) withDefaults() Layout {
	d := DefaultLayout()
	if l == (Layout{}) {
		return d
	}
	if l.CardSize.W <= 0 || l.CardSize.H <= 0 {
		l.CardSize = d.CardSize
	}
	if l.ColumnPitch <= 0 {
		l.ColumnPitch = d.ColumnPitch
	}
	if l.TableauTop <= 0 {
		l.TableauTop = d.TableauTop
	}
	if l.FanStep <= 0 {
		l.FanStep = d.FanStep
	}
	return l
}

func (l Layout) topRow(col int) Point {
	return Point{X: l.Margin + float64(col)*l.ColumnPitch, Y: l.Margin}
}

func (l Layout) StockAnchor() Point { return l.topRow(0) }
func (l Layout) WasteAnchor() Point { return l.topRow(1) }

// FoundationAnchor places the four foundations over tableau columns 3..6.
func (l Layout) FoundationAnchor(i int) Point { return l.topRow(3 + i) }

func (l Layout) TableauAnchor(i int) Point {
	return Point{X: l.Margin + float64(i)*l.ColumnPitch, Y: l.TableauTop}
}
