package pdflayout_test

import (
	"strings"
	"testing"

	"go-bizdocs/internal/pdflayout"

	"github.com/stretchr/testify/assert"
)

func TestBuildRows(t *testing.T) {
	items := []pdflayout.LineItem{
		pdflayout.SectionHeader{Description: "Worktop"},
		pdflayout.Item{
			ItemNumber: "1", Description: "Granite slab", Unit: "pcs",
			Quantity: pdflayout.Amount(2), UnitPrice: pdflayout.Amount(15000), Total: pdflayout.Amount(30000),
		},
		pdflayout.Item{ItemNumber: "2", Description: "Labour"},
		pdflayout.SectionSummary{Description: "Worktop Total", Total: 30000},
	}

	rows := pdflayout.BuildRows(items, nil, nil)
	assert.Len(t, rows, 4)

	assert.True(t, rows[0].IsSection())
	assert.Equal(t, [6]string{"", "WORKTOP", "", "", "", ""}, rows[0].Cells)

	assert.Equal(t, pdflayout.RowItem, rows[1].Kind)
	assert.Equal(t, [6]string{"1", "Granite slab", "pcs", "2", "15,000.00", "30,000.00"}, rows[1].Cells)

	// blank optional columns never turn into zeros
	assert.Equal(t, [6]string{"2", "Labour", "", "", "", ""}, rows[2].Cells)

	assert.True(t, rows[3].IsSectionSummary())
	assert.Equal(t, "Worktop Total:", rows[3].Cells[pdflayout.CellDescription])
	assert.Equal(t, "30,000.00", rows[3].Cells[pdflayout.CellTotal])
}

func TestBuildRows_CustomSectionNames(t *testing.T) {
	rows := pdflayout.BuildRows([]pdflayout.LineItem{
		pdflayout.SectionHeader{Description: "worktop"},
		pdflayout.SectionSummary{Description: "worktop", Total: 1},
		pdflayout.SectionSummary{Description: "Paid:", Total: 1},
	}, map[string]string{"worktop": "Kitchen Worktop"}, nil)

	assert.Equal(t, "KITCHEN WORKTOP", rows[0].Cells[pdflayout.CellDescription])
	assert.Equal(t, "Kitchen Worktop:", rows[1].Cells[pdflayout.CellDescription])
	assert.Equal(t, "Paid:", rows[2].Cells[pdflayout.CellDescription])
}

func TestHeuristicMeasurer_Monotonic(t *testing.T) {
	m := pdflayout.HeuristicMeasurer{}

	prev := 0.0
	for n := 0; n < 40; n++ {
		w := m.EstimateWidth(strings.Repeat("a", n), 9, pdflayout.WeightRegular)
		assert.GreaterOrEqual(t, w, prev)
		prev = w
	}

	assert.Greater(t, m.EstimateWidth("TOTAL", 10, pdflayout.WeightBold), m.EstimateWidth("TOTAL", 10, pdflayout.WeightRegular))
	assert.Greater(t, m.EstimateWidth("TOTAL", 12, pdflayout.WeightRegular), m.EstimateWidth("TOTAL", 10, pdflayout.WeightRegular))
	assert.Equal(t, 0.0, m.EstimateWidth("TOTAL", 0, pdflayout.WeightRegular))
}

func TestLayoutClientBox(t *testing.T) {
	m := pdflayout.HeuristicMeasurer{}
	client := pdflayout.Client{Name: "Jane", SiteLocation: "Kilimani", Mobile: "0712345678", Date: "2026-10-19"}

	box := pdflayout.LayoutClientBox(client, m, 18, 56)

	widest := 0.0
	for _, f := range box.Fields {
		assert.Equal(t, 18.0, f.LabelX)
		assert.GreaterOrEqual(t, f.ValueX, f.LabelX+m.EstimateWidth(f.Label, 9, pdflayout.WeightBold)+6)
		pair := f.LabelWidth + 6 + m.EstimateWidth(f.Value, 9, pdflayout.WeightRegular)
		widest = max(widest, pair)
	}
	assert.InDelta(t, widest+1, box.Width, 1e-9)
	assert.Equal(t, "SITE LOCATION:", box.Fields[1].Label)
	assert.Equal(t, 56.0, box.Y)
}

func TestLayoutClientBox_WidthNeverShrinks(t *testing.T) {
	m := pdflayout.HeuristicMeasurer{}
	base := pdflayout.Client{Name: "A", SiteLocation: "B", Mobile: "C", Date: "D"}
	prev := pdflayout.LayoutClientBox(base, m, 18, 56).Width

	for i := 0; i < 30; i++ {
		base.Name += "x"
		if i%2 == 0 {
			base.SiteLocation += "y"
		}
		w := pdflayout.LayoutClientBox(base, m, 18, 56).Width
		assert.GreaterOrEqual(t, w, prev)
		prev = w
	}
}
