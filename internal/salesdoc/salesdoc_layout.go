package salesdoc

import (
	"encoding/json"

	"go-bizdocs/internal/company"
	"go-bizdocs/internal/pdflayout"
	salesdocerrors "go-bizdocs/internal/salesdoc/errors"
)

type images struct {
	logo      string
	watermark string
}

// toDocumentData is the bridge from a stored document to the layout engine.
func toDocumentData(doc *SalesDocument, profile *company.ProfileResponse, img images) (pdflayout.DocumentData, error) {
	terms, err := decodeTerms(doc)
	if err != nil {
		return pdflayout.DocumentData{}, err
	}

	items := make([]pdflayout.LineItem, 0, len(doc.Items))
	for _, it := range doc.Items {
		switch it.Type {
		case ItemTypeSection:
			items = append(items, pdflayout.SectionHeader{Description: it.Description})
		case ItemTypeSummary:
			total := 0.0
			if it.Total != nil {
				total = *it.Total
			}
			items = append(items, pdflayout.SectionSummary{Description: it.Description, Total: total})
		default:
			items = append(items, pdflayout.Item{
				ItemNumber:  it.ItemNumber,
				Description: it.Description,
				Unit:        it.Unit,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				Total:       it.Total,
			})
		}
	}

	sections, total := sectionTotals(doc.Items)
	st := make([]pdflayout.SectionTotal, len(sections))
	for i, s := range sections {
		st[i] = pdflayout.SectionTotal{Name: s.Name, Total: s.Total}
	}

	title := doc.Title
	if title == "" {
		title = doc.Kind.Title()
	}

	return pdflayout.DocumentData{
		Company: pdflayout.Company{
			Name:     profile.Name,
			Location: profile.Location,
			Phone:    profile.Phone,
			Email:    profile.Email,
			Logo:     img.logo,
		},
		Client: pdflayout.Client{
			Name:         doc.ClientName,
			SiteLocation: doc.SiteLocation,
			Mobile:       doc.ClientMobile,
			Date:         doc.DocumentDate.Format(dateLayout),
		},
		Title:          title,
		Number:         doc.Number,
		OriginalNumber: doc.OriginalNumber,
		Items:          items,
		SectionNames:   sectionNames(doc),
		SectionTotals:  st,
		Total:          total,
		Notes:          doc.Notes,
		Terms:          terms,
		PreparedBy:     doc.PreparedBy,
		ApprovedBy:     doc.ApprovedBy,
		Watermark:      img.watermark,
	}, nil
}

func decodeTerms(doc *SalesDocument) ([]string, error) {
	terms := []string{}
	if len(doc.Terms) == 0 {
		return terms, nil
	}
	if err := json.Unmarshal(doc.Terms, &terms); err != nil {
		return nil, salesdocerrors.ErrStoredDocumentCorrupt
	}
	return terms, nil
}

// sectionNames drops non-string values a hand-edited row might carry.
func sectionNames(doc *SalesDocument) map[string]string {
	if len(doc.SectionNames) == 0 {
		return nil
	}
	out := make(map[string]string, len(doc.SectionNames))
	for k, v := range doc.SectionNames {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
