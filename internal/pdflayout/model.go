// Package pdflayout turns business documents (quotations, sales orders,
// invoices, cash sales) into paginated A4 layouts: a per-page list of
// positioned elements plus a matching map of field values. Rasterizing the
// result is left to a renderer.
package pdflayout

// LineItem is one of Item, SectionHeader or SectionSummary.
type LineItem interface {
	lineItem()
}

// Item is a priced table row. Nil numeric fields render as blank cells.
type Item struct {
	ItemNumber  string
	Description string
	Unit        string
	Quantity    *float64
	UnitPrice   *float64
	Total       *float64
}

// SectionHeader is a category banner such as "WORKTOP".
type SectionHeader struct {
	Description string
}

// SectionSummary is the subtotal line closing a section.
type SectionSummary struct {
	Description string
	Total       float64
}

func (Item) lineItem()           {}
func (SectionHeader) lineItem()  {}
func (SectionSummary) lineItem() {}

// Amount is a convenience for filling optional Item fields.
func Amount(v float64) *float64 {
	return &v
}

type SectionTotal struct {
	Name  string
	Total float64
}

type Company struct {
	Name     string
	Location string
	Phone    string
	Email    string
	// Logo is an encoded image (data URI or raw base64); empty means none.
	Logo string
}

type Client struct {
	Name         string
	SiteLocation string
	Mobile       string
	Date         string
}

type DocumentData struct {
	Company Company
	Client  Client

	Title          string
	Number         string
	OriginalNumber string

	Items         []LineItem
	SectionNames  map[string]string
	SectionTotals []SectionTotal
	Total         float64

	Notes      string
	Terms      []string
	PreparedBy string
	ApprovedBy string

	// Watermark is an encoded image; empty renders no watermark.
	Watermark string
}

const DefaultTitle = "QUOTATION"

func (d DocumentData) title() string {
	if d.Title == "" {
		return DefaultTitle
	}
	return d.Title
}

// displayName applies a custom section name when one is configured.
func displayName(names map[string]string, name string) string {
	if custom, ok := names[name]; ok && custom != "" {
		return custom
	}
	return name
}
