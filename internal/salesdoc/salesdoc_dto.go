package salesdoc

type ItemRequest struct {
	Type        ItemType `json:"type" binding:"required,oneof=ITEM SECTION SUMMARY"`
	ItemNumber  string   `json:"item_number"`
	Description string   `json:"description"`
	Unit        string   `json:"unit"`
	Quantity    *float64 `json:"quantity" binding:"omitempty,gte=0"`
	UnitPrice   *float64 `json:"unit_price" binding:"omitempty,gte=0"`
}

type CreateDocumentRequest struct {
	Kind         Kind              `json:"kind" binding:"required,oneof=QUOTATION SALES_ORDER INVOICE CASH_SALE"`
	Title        string            `json:"title"`
	ClientName   string            `json:"client_name" binding:"required"`
	SiteLocation string            `json:"site_location"`
	ClientMobile string            `json:"client_mobile"`
	DocumentDate string            `json:"document_date" binding:"required,datetime=2006-01-02"`
	SectionNames map[string]string `json:"section_names"`
	Terms        []string          `json:"terms"`
	Notes        string            `json:"notes"`
	PreparedBy   string            `json:"prepared_by"`
	ApprovedBy   string            `json:"approved_by"`
	Items        []ItemRequest     `json:"items" binding:"dive"`
}

// UpdateDocumentRequest replaces the whole document body; kind and number are fixed.
type UpdateDocumentRequest struct {
	Title        string            `json:"title"`
	ClientName   string            `json:"client_name" binding:"required"`
	SiteLocation string            `json:"site_location"`
	ClientMobile string            `json:"client_mobile"`
	DocumentDate string            `json:"document_date" binding:"required,datetime=2006-01-02"`
	SectionNames map[string]string `json:"section_names"`
	Terms        []string          `json:"terms"`
	Notes        string            `json:"notes"`
	PreparedBy   string            `json:"prepared_by"`
	ApprovedBy   string            `json:"approved_by"`
	Items        []ItemRequest     `json:"items" binding:"dive"`
}

type ConvertRequest struct {
	Kind Kind `json:"kind" binding:"required,oneof=SALES_ORDER INVOICE CASH_SALE"`
}

type ItemResponse struct {
	Type        ItemType `json:"type"`
	ItemNumber  string   `json:"item_number,omitempty"`
	Description string   `json:"description"`
	Unit        string   `json:"unit,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	UnitPrice   *float64 `json:"unit_price,omitempty"`
	Total       *float64 `json:"total,omitempty"`
}

type SectionTotalResponse struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

type DocumentResponse struct {
	ID             string                 `json:"id"`
	CompanyID      string                 `json:"company_id"`
	Kind           Kind                   `json:"kind"`
	Number         string                 `json:"number"`
	OriginalNumber string                 `json:"original_number,omitempty"`
	Title          string                 `json:"title"`
	ClientName     string                 `json:"client_name"`
	SiteLocation   string                 `json:"site_location"`
	ClientMobile   string                 `json:"client_mobile"`
	DocumentDate   string                 `json:"document_date"`
	SectionNames   map[string]string      `json:"section_names,omitempty"`
	SectionTotals  []SectionTotalResponse `json:"section_totals"`
	Terms          []string               `json:"terms"`
	Notes          string                 `json:"notes,omitempty"`
	PreparedBy     string                 `json:"prepared_by,omitempty"`
	ApprovedBy     string                 `json:"approved_by,omitempty"`
	Items          []ItemResponse         `json:"items"`
	Total          float64                `json:"total"`
	PDFURL         string                 `json:"pdf_url,omitempty"`
	PDFGeneratedAt string                 `json:"pdf_generated_at,omitempty"`
}

type PDFRequestResponse struct {
	DocumentID string `json:"document_id"`
	Status     string `json:"status"`
}
