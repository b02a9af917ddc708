package salesdoc

import (
	"strings"

	"github.com/shopspring/decimal"
)

// buildItems turns request rows into entities, pricing each item as
// quantity*unit price. A summary row closes the running section and takes
// its subtotal; an empty summary description falls back to the section name.
func buildItems(reqs []ItemRequest) []SalesDocumentItem {
	items := make([]SalesDocumentItem, 0, len(reqs))
	section, running := "", decimal.Zero

	for i, r := range reqs {
		item := SalesDocumentItem{
			Position:    i,
			Type:        r.Type,
			ItemNumber:  strings.TrimSpace(r.ItemNumber),
			Description: strings.TrimSpace(r.Description),
			Unit:        strings.TrimSpace(r.Unit),
		}

		switch r.Type {
		case ItemTypeSection:
			section, running = item.Description, decimal.Zero
		case ItemTypeSummary:
			if item.Description == "" {
				item.Description = section
			}
			item.Total = money(running)
		default:
			item.Type = ItemTypeItem
			item.Quantity = r.Quantity
			item.UnitPrice = r.UnitPrice
			if r.Quantity != nil && r.UnitPrice != nil {
				line := decimal.NewFromFloat(*r.Quantity).Mul(decimal.NewFromFloat(*r.UnitPrice)).Round(2)
				item.Total = money(line)
				running = running.Add(line)
			}
		}
		items = append(items, item)
	}
	return items
}

// sectionTotals sums priced items per section header, in header order.
// Items ahead of the first header count toward the grand total only.
func sectionTotals(items []SalesDocumentItem) ([]SectionTotalResponse, float64) {
	totals := []SectionTotalResponse{}
	grand := decimal.Zero
	current := -1
	sums := []decimal.Decimal{}

	for _, it := range items {
		switch it.Type {
		case ItemTypeSection:
			totals = append(totals, SectionTotalResponse{Name: it.Description})
			sums = append(sums, decimal.Zero)
			current = len(totals) - 1
		case ItemTypeItem:
			if it.Total == nil {
				continue
			}
			v := decimal.NewFromFloat(*it.Total)
			grand = grand.Add(v)
			if current >= 0 {
				sums[current] = sums[current].Add(v)
			}
		}
	}

	for i := range totals {
		totals[i].Total = sums[i].Round(2).InexactFloat64()
	}
	return totals, grand.Round(2).InexactFloat64()
}

func money(d decimal.Decimal) *float64 {
	v := d.Round(2).InexactFloat64()
	return &v
}
