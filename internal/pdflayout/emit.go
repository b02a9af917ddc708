package pdflayout

import (
	"fmt"
	"strings"

	"go-bizdocs/internal/shared/currency"
)

const (
	colorInk    = "#000000"
	colorWhite  = "#ffffff"
	colorBrand  = "#1f3864"
	colorShade  = "#f2f2f2"
	colorBorder = "#bfbfbf"
)

const (
	marginX      = 17.0
	contentWidth = 176.0
)

type column struct {
	key   string
	title string
	x     float64
	width float64
	align Alignment
}

var columns = [cellCount]column{
	{"item", "Item", 17, 12, AlignLeft},
	{"description", "Description", 29, 68, AlignLeft},
	{"unit", "Unit", 97, 20, AlignCenter},
	{"qty", "Qty", 117, 20, AlignCenter},
	{"unitPrice", "Unit Price", 137, 30, AlignRight},
	{"total", "Total", 167, 26, AlignRight},
}

// Footer frame, relative to the footer's top.
const (
	totalsBoxX      = 130.0
	totalsBoxWidth  = 63.0
	totalsBoxBase   = 10.0
	termsWidth      = 105.0
	termsBodyOffset = 6.0
	notesGap        = 1.0
	notesHeight     = 5.0
	signatureGap    = 2.0
)

type Option func(*Emitter)

func WithMeasurer(m TextMeasurer) Option {
	return func(e *Emitter) {
		if m != nil {
			e.measurer = m
		}
	}
}

func WithFormatter(f *currency.Formatter) Option {
	return func(e *Emitter) {
		if f != nil {
			e.formatter = f
		}
	}
}

func WithGeometry(g Geometry) Option {
	return func(e *Emitter) {
		e.geometry = g
	}
}

// Emitter holds only configuration, so one value can serve concurrent calls.
type Emitter struct {
	measurer  TextMeasurer
	formatter *currency.Formatter
	geometry  Geometry
}

func NewEmitter(opts ...Option) *Emitter {
	e := &Emitter{
		measurer:  HeuristicMeasurer{},
		formatter: currency.Default(),
		geometry:  A4,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Emitter) Geometry() Geometry {
	return e.geometry
}

// Generate runs the whole pipeline: rows, pagination, emission.
func (e *Emitter) Generate(data DocumentData) Document {
	rows := BuildRows(data.Items, data.SectionNames, e.formatter)
	pages := Paginate(rows, FooterMetrics{
		TermsLines:    len(data.Terms),
		SectionTotals: len(data.SectionTotals),
	}, e.geometry)
	return e.Emit(pages, data)
}

func (e *Emitter) Emit(pages []Page, data DocumentData) Document {
	doc := Document{
		Template: make([]Schema, 0, len(pages)),
		Inputs:   make([]map[string]string, 0, len(pages)),
	}

	for _, p := range pages {
		b := newPageBuilder()

		b.image(Image{
			Name:    "watermark",
			X:       (e.geometry.PageWidth - 100) / 2,
			Y:       (e.geometry.PageHeight - 100) / 2,
			Width:   100,
			Height:  100,
			Opacity: 0.08,
		}, data.Watermark)

		if p.HasHeader {
			e.emitHeader(b, data)
		}
		if p.HasTable {
			e.emitTableHeader(b, p.TableStartY)
			for i, row := range p.Rows {
				e.emitRow(b, i, row, p.RowY(e.geometry, i))
			}
		}
		if p.HasFooter {
			e.emitFooter(b, data, p.FooterY)
		}

		doc.Template = append(doc.Template, b.schema)
		doc.Inputs = append(doc.Inputs, b.inputs)
	}
	return doc
}

func (e *Emitter) emitHeader(b *pageBuilder, data DocumentData) {
	top := e.geometry.TopMargin

	b.image(Image{Name: "logo", X: marginX, Y: top, Width: 35, Height: 22, Opacity: 1}, data.Company.Logo)

	identity := []struct {
		name, value string
		size        float64
		bold        bool
		y, h        float64
	}{
		{"companyName", data.Company.Name, 14, true, top, 7},
		{"companyLocation", data.Company.Location, 9, false, top + 8, 5},
		{"companyPhone", data.Company.Phone, 9, false, top + 13, 5},
		{"companyEmail", data.Company.Email, 9, false, top + 18, 5},
	}
	for _, f := range identity {
		b.text(Text{
			Name: f.name, X: 100, Y: f.y, Width: 93, Height: f.h,
			FontSize: f.size, Bold: f.bold, Align: AlignRight,
		}, f.value)
	}

	bannerY := top + 25
	b.rect(Rectangle{Name: "titleBanner", X: marginX, Y: bannerY, Width: contentWidth, Height: 8, Fill: colorBrand, Radius: 1})
	b.text(Text{
		Name: "title", X: marginX, Y: bannerY, Width: contentWidth, Height: 8,
		FontSize: 12, Bold: true, Color: colorWhite, Align: AlignCenter,
	}, data.title())

	box := LayoutClientBox(data.Client, e.measurer, marginX+1, bannerY+11)
	b.rect(Rectangle{
		Name: "clientBox", X: box.X, Y: box.Y, Width: box.Width, Height: box.Height,
		Fill: colorShade, BorderColor: colorBorder, Radius: 1,
	})
	keys := [4]string{"clientName", "siteLocation", "mobileNo", "date"}
	for i, f := range box.Fields {
		b.text(Text{
			Name: keys[i] + "Label", X: f.LabelX, Y: f.Y, Width: f.LabelWidth, Height: clientLineStep,
			FontSize: clientFontSize, Bold: true,
		}, f.Label)
		b.text(Text{
			Name: keys[i], X: f.ValueX, Y: f.Y,
			Width:    e.measurer.EstimateWidth(f.Value, clientFontSize, WeightRegular),
			Height:   clientLineStep,
			FontSize: clientFontSize,
		}, f.Value)
	}

	b.text(Text{
		Name: "documentNumber", X: 130, Y: box.Y + clientBoxMargin, Width: 63, Height: 5,
		FontSize: 10, Bold: true, Align: AlignRight,
	}, fmt.Sprintf("%s NO: %s", data.title(), data.Number))
	if data.OriginalNumber != "" {
		b.text(Text{
			Name: "originalNumber", X: 130, Y: box.Y + clientBoxMargin + 5, Width: 63, Height: 5,
			FontSize: 9, Align: AlignRight,
		}, "REF NO: "+data.OriginalNumber)
	}
}

func (e *Emitter) emitTableHeader(b *pageBuilder, y float64) {
	h := e.geometry.TableHeaderHeight
	b.rect(Rectangle{Name: "tableHeader", X: marginX, Y: y, Width: contentWidth, Height: h, Fill: colorBrand})
	for _, c := range columns {
		b.text(Text{
			Name: "hdr_" + c.key, X: c.x, Y: y, Width: c.width, Height: h,
			FontSize: 10, Bold: true, Color: colorWhite, Align: c.align,
		}, c.title)
	}
}

func (e *Emitter) emitRow(b *pageBuilder, i int, row RenderRow, y float64) {
	h := e.geometry.RowHeight
	name := func(key string) string { return fmt.Sprintf("row%d_%s", i, key) }

	switch row.Kind {
	case RowSection:
		desc := columns[CellDescription]
		b.text(Text{
			Name: name("section"), X: desc.x, Y: y, Width: desc.width, Height: h,
			FontSize: 10, Bold: true,
		}, row.Cells[CellDescription])

	case RowSectionSummary:
		desc, total := columns[CellDescription], columns[CellTotal]
		b.text(Text{
			Name: name("summaryLabel"), X: desc.x, Y: y, Width: total.x - desc.x, Height: h,
			FontSize: 10, Bold: true, Align: AlignRight,
		}, row.Cells[CellDescription])
		b.text(Text{
			Name: name("summaryTotal"), X: total.x, Y: y, Width: total.width, Height: h,
			FontSize: 10, Bold: true, Align: AlignRight,
		}, row.Cells[CellTotal])

	default:
		for c, col := range columns {
			b.text(Text{
				Name: name(col.key), X: col.x, Y: y, Width: col.width, Height: h,
				FontSize: 9, Align: col.align,
			}, row.Cells[c])
		}
	}

	b.line(Line{Name: name("rule"), X: marginX, Y: y + h, Length: contentWidth, Thickness: 0.1, Color: colorBorder})
}

func (e *Emitter) emitFooter(b *pageBuilder, data DocumentData, top float64) {
	g := e.geometry
	termsHeight := g.TermsHeight(len(data.Terms))

	b.text(Text{Name: "termsTitle", X: marginX, Y: top, Width: termsWidth, Height: 5, FontSize: 10, Bold: true},
		"TERMS & CONDITIONS")
	b.text(Text{
		Name: "termsBody", X: marginX, Y: top + termsBodyOffset, Width: termsWidth, Height: termsHeight,
		FontSize: 8, LineHeight: g.TermsLineHeight,
	}, strings.Join(data.Terms, "\n"))

	notesY := top + termsBodyOffset + termsHeight + notesGap
	notes := ""
	if data.Notes != "" {
		notes = "Notes: " + data.Notes
	}
	b.text(Text{Name: "notes", X: marginX, Y: notesY, Width: termsWidth, Height: notesHeight, FontSize: 8}, notes)

	sections := len(data.SectionTotals)
	boxHeight := totalsBoxBase + float64(sections)*g.TotalsLineHeight
	b.rect(Rectangle{
		Name: "totalsBox", X: totalsBoxX, Y: top, Width: totalsBoxWidth, Height: boxHeight,
		Fill: colorShade, BorderColor: colorBorder, Radius: 1,
	})

	lineY := top + 1
	for i, st := range data.SectionTotals {
		b.text(Text{
			Name: fmt.Sprintf("sectionTotalLabel_%d", i), X: totalsBoxX + 2, Y: lineY, Width: 26, Height: g.TotalsLineHeight,
			FontSize: 9,
		}, summaryLabel(displayName(data.SectionNames, st.Name)))
		b.text(Text{
			Name: fmt.Sprintf("sectionTotalValue_%d", i), X: totalsBoxX + 28, Y: lineY, Width: 33, Height: g.TotalsLineHeight,
			FontSize: 9, Align: AlignRight,
		}, e.formatter.WithCode(st.Total))
		lineY += g.TotalsLineHeight
	}
	b.text(Text{
		Name: "grandTotalLabel", X: totalsBoxX + 2, Y: lineY, Width: 26, Height: g.TotalsLineHeight,
		FontSize: 10, Bold: true,
	}, "Total:")
	b.text(Text{
		Name: "grandTotalValue", X: totalsBoxX + 28, Y: lineY, Width: 33, Height: g.TotalsLineHeight,
		FontSize: 10, Bold: true, Align: AlignRight,
	}, e.formatter.WithCode(data.Total))

	leftBottom := notesY + notesHeight - top
	sigY := top + max(leftBottom, boxHeight) + signatureGap

	signers := []struct {
		key, label, name string
		x, w             float64
	}{
		{"preparedBy", "Prepared by:", data.PreparedBy, marginX, 50},
		{"approvedBy", "Approved by:", data.ApprovedBy, 110, 55},
	}
	for _, s := range signers {
		b.text(Text{Name: s.key + "Label", X: s.x, Y: sigY, Width: 22, Height: 5, FontSize: 9, Bold: true}, s.label)
		b.text(Text{Name: s.key, X: s.x + 22, Y: sigY, Width: s.w, Height: 5, FontSize: 9}, s.name)
		b.line(Line{Name: s.key + "Rule", X: s.x + 22, Y: sigY + 6, Length: s.w})
	}
}
