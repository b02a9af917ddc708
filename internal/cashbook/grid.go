package cashbook

import (
	"fmt"

	"go-bizdocs/internal/pdflayout"
	"go-bizdocs/internal/shared/currency"
)

// MaxRows is the grid capacity per side. Longer lists are cut at render
// time, but their totals still cover every transaction.
const MaxRows = 12

type Txn struct {
	Date        string
	Particulars string
	Ref         string
	Cash        float64
	Bank        float64
	Discount    float64
}

type Meta struct {
	CompanyName string
	Title       string
	PeriodFrom  string
	PeriodTo    string
	PreparedBy  string
}

type Totals struct {
	Cash     float64
	Bank     float64
	Discount float64
}

func SideTotals(txns []Txn) Totals {
	cash := make([]float64, len(txns))
	bank := make([]float64, len(txns))
	discount := make([]float64, len(txns))
	for i, t := range txns {
		cash[i], bank[i], discount[i] = t.Cash, t.Bank, t.Discount
	}
	return Totals{
		Cash:     currency.Sum(cash...),
		Bank:     currency.Sum(bank...),
		Discount: currency.Sum(discount...),
	}
}

const (
	receiptsX  = 10.0
	paymentsX  = 107.0
	sideWidth  = 93.0
	titleY     = 15.0
	sideY      = 36.0
	colHeaderY = 42.0
	firstRowY  = 49.0
	rowHeight  = 8.0
	cellFont   = 7.0
)

type gridColumn struct {
	key    string
	title  string
	offset float64
	width  float64
	align  pdflayout.Alignment
	money  bool
}

var gridColumns = []gridColumn{
	{"date", "Date", 0, 14, pdflayout.AlignLeft, false},
	{"particulars", "Particulars", 14, 28, pdflayout.AlignLeft, false},
	{"ref", "Ref", 42, 10, pdflayout.AlignCenter, false},
	{"cash", "Cash", 52, 14, pdflayout.AlignRight, true},
	{"bank", "Bank", 66, 14, pdflayout.AlignRight, true},
	{"discount", "Discount", 80, 13, pdflayout.AlignRight, true},
}

var sides = []struct {
	key   string
	title string
	x     float64
}{
	{"receipt", "RECEIPTS", receiptsX},
	{"payment", "PAYMENTS", paymentsX},
}

func cellName(side string, row int, col string) string {
	return fmt.Sprintf("%s_%d_%s", side, row, col)
}

// Schema returns the fixed single-page layout of the cash book.
func Schema() pdflayout.Schema {
	s := pdflayout.Schema{
		pdflayout.Text{Name: "title", X: 10, Y: titleY, Width: 190, Height: 7, FontSize: 14, Bold: true, Color: "#000000", Align: pdflayout.AlignCenter},
		pdflayout.Text{Name: "companyName", X: 10, Y: titleY + 7, Width: 190, Height: 6, FontSize: 10, Color: "#000000", Align: pdflayout.AlignCenter},
		pdflayout.Text{Name: "period", X: 10, Y: titleY + 13, Width: 190, Height: 5, FontSize: 9, Color: "#000000", Align: pdflayout.AlignCenter},
	}

	for _, side := range sides {
		s = append(s,
			pdflayout.Rectangle{Name: side.key + "_banner", X: side.x, Y: sideY, Width: sideWidth, Height: 6, Fill: "#1f3864"},
			pdflayout.Text{Name: side.key + "_title", X: side.x, Y: sideY, Width: sideWidth, Height: 6, FontSize: 10, Bold: true, Color: "#ffffff", Align: pdflayout.AlignCenter},
		)
		for _, c := range gridColumns {
			s = append(s, pdflayout.Text{
				Name: side.key + "_hdr_" + c.key, X: side.x + c.offset, Y: colHeaderY, Width: c.width, Height: 7,
				FontSize: cellFont, Bold: true, Color: "#000000", Align: c.align,
			})
		}
		for i := 0; i < MaxRows; i++ {
			y := firstRowY + float64(i)*rowHeight
			for _, c := range gridColumns {
				s = append(s, pdflayout.Text{
					Name: cellName(side.key, i, c.key), X: side.x + c.offset, Y: y, Width: c.width, Height: rowHeight,
					FontSize: cellFont, Color: "#000000", Align: c.align,
				})
			}
			s = append(s, pdflayout.Line{
				Name: fmt.Sprintf("%s_%d_rule", side.key, i), X: side.x, Y: y + rowHeight, Length: sideWidth, Thickness: 0.1, Color: "#bfbfbf",
			})
		}

		totalsY := firstRowY + MaxRows*rowHeight
		s = append(s, pdflayout.Text{
			Name: side.key + "_total_label", X: side.x, Y: totalsY, Width: 52, Height: rowHeight,
			FontSize: 8, Bold: true, Color: "#000000", Align: pdflayout.AlignRight,
		})
		for _, c := range gridColumns {
			if !c.money {
				continue
			}
			s = append(s, pdflayout.Text{
				Name: side.key + "_total_" + c.key, X: side.x + c.offset, Y: totalsY, Width: c.width, Height: rowHeight,
				FontSize: cellFont, Bold: true, Color: "#000000", Align: c.align,
			})
		}
		s = append(s, pdflayout.Line{Name: side.key + "_total_rule", X: side.x, Y: totalsY + rowHeight, Length: sideWidth, Thickness: 0.4, Color: "#000000"})
	}

	s = append(s,
		pdflayout.Text{Name: "preparedByLabel", X: 10, Y: 170, Width: 22, Height: 5, FontSize: 9, Bold: true, Color: "#000000", Align: pdflayout.AlignLeft},
		pdflayout.Text{Name: "preparedBy", X: 32, Y: 170, Width: 60, Height: 5, FontSize: 9, Color: "#000000", Align: pdflayout.AlignLeft},
		pdflayout.Line{Name: "preparedByRule", X: 32, Y: 176, Length: 60, Thickness: 0.3, Color: "#000000"},
	)
	return s
}

// BuildCashBook returns the inputs for the single cash-book page.
// Rows past MaxRows are dropped; totals are taken over the full lists.
func BuildCashBook(receipts, payments []Txn, meta Meta, f *currency.Formatter) []map[string]string {
	if f == nil {
		f = currency.Default()
	}

	title := meta.Title
	if title == "" {
		title = "CASH BOOK"
	}
	inputs := map[string]string{
		"title":           title,
		"companyName":     meta.CompanyName,
		"period":          period(meta),
		"preparedByLabel": "Prepared by:",
		"preparedBy":      meta.PreparedBy,
	}

	lists := map[string][]Txn{"receipt": receipts, "payment": payments}
	for _, side := range sides {
		txns := lists[side.key]
		inputs[side.key+"_title"] = side.title
		for _, c := range gridColumns {
			inputs[side.key+"_hdr_"+c.key] = c.title
		}

		for i := 0; i < MaxRows; i++ {
			for _, c := range gridColumns {
				inputs[cellName(side.key, i, c.key)] = cellValue(txns, i, c.key, f)
			}
		}

		totals := SideTotals(txns)
		inputs[side.key+"_total_label"] = "Total:"
		inputs[side.key+"_total_cash"] = f.Format(totals.Cash)
		inputs[side.key+"_total_bank"] = f.Format(totals.Bank)
		inputs[side.key+"_total_discount"] = f.Format(totals.Discount)
	}

	return []map[string]string{inputs}
}

// Document pairs the fixed schema with the generated inputs.
func Document(receipts, payments []Txn, meta Meta, f *currency.Formatter) pdflayout.Document {
	return pdflayout.Document{
		Template: []pdflayout.Schema{Schema()},
		Inputs:   BuildCashBook(receipts, payments, meta, f),
	}
}

func cellValue(txns []Txn, i int, col string, f *currency.Formatter) string {
	if i >= len(txns) {
		return ""
	}
	t := txns[i]
	switch col {
	case "date":
		return t.Date
	case "particulars":
		return t.Particulars
	case "ref":
		return t.Ref
	case "cash":
		return f.Format(t.Cash)
	case "bank":
		return f.Format(t.Bank)
	case "discount":
		return f.Format(t.Discount)
	}
	return ""
}

func period(m Meta) string {
	switch {
	case m.PeriodFrom != "" && m.PeriodTo != "":
		return fmt.Sprintf("For the period %s to %s", m.PeriodFrom, m.PeriodTo)
	case m.PeriodFrom != "":
		return "From " + m.PeriodFrom
	case m.PeriodTo != "":
		return "Up to " + m.PeriodTo
	}
	return ""
}
