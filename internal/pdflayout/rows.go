package pdflayout

import (
	"strconv"
	"strings"

	"go-bizdocs/internal/shared/currency"
)

type RowKind int

const (
	RowItem RowKind = iota
	RowSection
	RowSectionSummary
)

// Cell positions in RenderRow.Cells.
const (
	CellItemNumber = iota
	CellDescription
	CellUnit
	CellQuantity
	CellUnitPrice
	CellTotal
	cellCount
)

// RenderRow is a table row with its display strings already resolved.
type RenderRow struct {
	Kind  RowKind
	Cells [cellCount]string
}

func (r RenderRow) IsSection() bool        { return r.Kind == RowSection }
func (r RenderRow) IsSectionSummary() bool { return r.Kind == RowSectionSummary }

// BuildRows maps line items onto render rows, one to one and in order.
// names may be nil; f defaults to the package formatter.
func BuildRows(items []LineItem, names map[string]string, f *currency.Formatter) []RenderRow {
	if f == nil {
		f = currency.Default()
	}

	rows := make([]RenderRow, 0, len(items))
	for _, li := range items {
		var row RenderRow
		switch v := li.(type) {
		case Item:
			row.Kind = RowItem
			row.Cells[CellItemNumber] = v.ItemNumber
			row.Cells[CellDescription] = v.Description
			row.Cells[CellUnit] = v.Unit
			row.Cells[CellQuantity] = formatQuantity(v.Quantity)
			row.Cells[CellUnitPrice] = formatOptional(f, v.UnitPrice)
			row.Cells[CellTotal] = formatOptional(f, v.Total)
		case SectionHeader:
			row.Kind = RowSection
			row.Cells[CellDescription] = strings.ToUpper(displayName(names, v.Description))
		case SectionSummary:
			row.Kind = RowSectionSummary
			row.Cells[CellDescription] = summaryLabel(displayName(names, v.Description))
			row.Cells[CellTotal] = f.Format(v.Total)
		default:
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

func formatOptional(f *currency.Formatter, v *float64) string {
	if v == nil {
		return ""
	}
	return f.Format(*v)
}

func formatQuantity(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func summaryLabel(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, ":") {
		return s
	}
	return s + ":"
}

const (
	clientFontSize  = 9.0
	clientLabelGap  = 6.0
	clientBoxPad    = 1.0
	clientLineStep  = 5.0
	clientBoxMargin = 1.0
)

type ClientField struct {
	Label      string
	Value      string
	LabelX     float64
	LabelWidth float64
	ValueX     float64
	Y          float64
}

// ClientBox is the bordered client-info block on page 1.
type ClientBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
	Fields [4]ClientField
}

// LayoutClientBox sizes the box so every label/value pair fits and each
// value starts clear of its own label.
func LayoutClientBox(c Client, m TextMeasurer, labelStart, top float64) ClientBox {
	if m == nil {
		m = HeuristicMeasurer{}
	}

	pairs := [4][2]string{
		{"CLIENT NAME:", c.Name},
		{"SITE LOCATION:", c.SiteLocation},
		{"MOBILE NO:", c.Mobile},
		{"DATE:", c.Date},
	}

	box := ClientBox{
		X:      labelStart - clientBoxPad/2,
		Y:      top,
		Height: float64(len(pairs))*clientLineStep + 2*clientBoxMargin,
	}

	widest := 0.0
	for i, p := range pairs {
		labelW := m.EstimateWidth(p[0], clientFontSize, WeightBold)
		valueW := m.EstimateWidth(p[1], clientFontSize, WeightRegular)
		widest = max(widest, labelW+clientLabelGap+valueW)

		box.Fields[i] = ClientField{
			Label:      p[0],
			Value:      p[1],
			LabelX:     labelStart,
			LabelWidth: labelW,
			ValueX:     labelStart + labelW + clientLabelGap,
			Y:          top + clientBoxMargin + float64(i)*clientLineStep,
		}
	}
	box.Width = widest + clientBoxPad
	return box
}
