package pdflayout

// FooterMetrics carries the counts that make the footer grow.
type FooterMetrics struct {
	TermsLines    int
	SectionTotals int
}

type Page struct {
	Number int
	Rows   []RenderRow

	HasHeader bool
	HasTable  bool
	HasFooter bool

	TableStartY float64
	FooterY     float64
}

// FooterOnly reports an overflow page carrying nothing but the footer block.
func (p Page) FooterOnly() bool {
	return p.HasFooter && !p.HasTable
}

// RowY is the top of the i-th row on this page.
func (p Page) RowY(g Geometry, i int) float64 {
	return p.TableStartY + g.TableHeaderHeight + float64(i)*g.RowHeight
}

// Paginate splits rows over pages without reordering them and places the
// footer as one block, either under the last rows or alone on a new page.
func Paginate(rows []RenderRow, footer FooterMetrics, g Geometry) []Page {
	first := g.FirstPageRows()
	other := g.OtherPageRows()

	pages := []Page{{
		Number:      1,
		HasHeader:   true,
		HasTable:    true,
		TableStartY: g.TableStartY(true),
	}}

	n := min(first, len(rows))
	pages[0].Rows = rows[:n:n]
	rest := rows[n:]

	for len(rest) > 0 {
		n = min(other, len(rest))
		pages = append(pages, Page{
			Number:      len(pages) + 1,
			Rows:        rest[:n:n],
			HasTable:    true,
			TableStartY: g.TableStartY(false),
		})
		rest = rest[n:]
	}

	last := &pages[len(pages)-1]
	footerY := last.RowY(g, len(last.Rows)) + g.FooterSpacing
	available := g.PageHeight - g.BottomMargin - footerY

	if available >= g.FooterHeight(footer) {
		last.HasFooter = true
		last.FooterY = footerY
		return pages
	}

	return append(pages, Page{
		Number:    len(pages) + 1,
		HasFooter: true,
		FooterY:   g.TopMargin,
	})
}
