package pdfrender

import (
	"sync"

	"go-bizdocs/internal/pdflayout"

	"github.com/go-pdf/fpdf"
)

// FontMetrics measures text with the core font tables fpdf ships with,
// a drop-in for pdflayout.HeuristicMeasurer.
type FontMetrics struct {
	mu     sync.Mutex
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
}

func NewFontMetrics(family string) *FontMetrics {
	if family == "" {
		family = "Helvetica"
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	return &FontMetrics{pdf: pdf, family: family, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (m *FontMetrics) EstimateWidth(text string, fontSizePt float64, weight pdflayout.FontWeight) float64 {
	if fontSizePt <= 0 || text == "" {
		return 0
	}
	style := ""
	if weight == pdflayout.WeightBold {
		style = "B"
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pdf.SetFont(m.family, style, fontSizePt)
	return m.pdf.GetStringWidth(m.tr(text))
}
