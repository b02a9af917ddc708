package pdflayout

import "math"

// Geometry is the fixed page frame, in millimetres.
type Geometry struct {
	PageWidth         float64
	PageHeight        float64
	TopMargin         float64
	HeaderHeight      float64
	TableHeaderHeight float64
	BaseFooterHeight  float64
	RowHeight         float64
	BottomMargin      float64
	FirstPageReserve  float64
	FooterSpacing     float64

	DefaultTermsHeight float64
	TermsLineHeight    float64
	TotalsLineHeight   float64
}

var A4 = Geometry{
	PageWidth:         210,
	PageHeight:        297,
	TopMargin:         20,
	HeaderHeight:      60,
	TableHeaderHeight: 10,
	BaseFooterHeight:  40,
	RowHeight:         8,
	BottomMargin:      15,
	FirstPageReserve:  16,
	FooterSpacing:     10,

	DefaultTermsHeight: 20,
	TermsLineHeight:    4,
	TotalsLineHeight:   8,
}

func (g Geometry) FirstPageRows() int {
	usable := g.PageHeight - g.TopMargin - g.HeaderHeight - g.TableHeaderHeight - g.BottomMargin - g.FirstPageReserve
	return rowsIn(usable, g.RowHeight)
}

func (g Geometry) OtherPageRows() int {
	usable := g.PageHeight - g.TopMargin - g.TableHeaderHeight - g.BottomMargin
	return rowsIn(usable, g.RowHeight)
}

// TableStartY is where the table header sits; page 1 leaves room for the header block.
func (g Geometry) TableStartY(first bool) float64 {
	if first {
		return g.TopMargin + g.HeaderHeight
	}
	return g.TopMargin
}

// TermsHeight never drops below the default allotment.
func (g Geometry) TermsHeight(lines int) float64 {
	return math.Max(g.DefaultTermsHeight, float64(lines)*g.TermsLineHeight)
}

func (g Geometry) FooterHeight(f FooterMetrics) float64 {
	termsExtra := g.TermsHeight(f.TermsLines) - g.DefaultTermsHeight
	return g.BaseFooterHeight + termsExtra + float64(max(0, f.SectionTotals))*g.TotalsLineHeight
}

func rowsIn(usable, rowHeight float64) int {
	if rowHeight <= 0 || usable <= 0 {
		return 1
	}
	n := int(math.Floor(usable / rowHeight))
	if n < 1 {
		return 1
	}
	return n
}
