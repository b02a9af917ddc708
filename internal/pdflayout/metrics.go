package pdflayout

import "unicode/utf8"

type FontWeight string

const (
	WeightRegular FontWeight = "regular"
	WeightBold    FontWeight = "bold"
)

// TextMeasurer returns the rendered width of a run in millimetres.
type TextMeasurer interface {
	EstimateWidth(text string, fontSizePt float64, weight FontWeight) float64
}

// Average glyph advance at 10pt, in mm.
const (
	regularCharWidth = 1.9
	boldCharWidth    = 2.1
)

// HeuristicMeasurer approximates widths from an average character advance.
// It exists because layout has to be decided before any glyph is placed.
type HeuristicMeasurer struct{}

func (HeuristicMeasurer) EstimateWidth(text string, fontSizePt float64, weight FontWeight) float64 {
	if fontSizePt <= 0 {
		return 0
	}
	per := regularCharWidth
	if weight == WeightBold {
		per = boldCharWidth
	}
	return float64(utf8.RuneCountInString(text)) * per * fontSizePt / 10
}
