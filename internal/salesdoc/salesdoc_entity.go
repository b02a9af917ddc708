package salesdoc

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Kind string

const (
	KindQuotation  Kind = "QUOTATION"
	KindSalesOrder Kind = "SALES_ORDER"
	KindInvoice    Kind = "INVOICE"
	KindCashSale   Kind = "CASH_SALE"
)

// Prefix is the numbering prefix, e.g. "QT" in QT-000042.
func (k Kind) Prefix() string {
	switch k {
	case KindQuotation:
		return "QT"
	case KindSalesOrder:
		return "SO"
	case KindInvoice:
		return "INV"
	case KindCashSale:
		return "CS"
	}
	return ""
}

// Title is the banner printed on the document.
func (k Kind) Title() string {
	switch k {
	case KindSalesOrder:
		return "SALES ORDER"
	case KindInvoice:
		return "INVOICE"
	case KindCashSale:
		return "CASH SALE"
	}
	return "QUOTATION"
}

func (k Kind) Valid() bool {
	return k.Prefix() != ""
}

type ItemType string

const (
	ItemTypeItem    ItemType = "ITEM"
	ItemTypeSection ItemType = "SECTION"
	ItemTypeSummary ItemType = "SUMMARY"
)

type SalesDocument struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind           Kind      `gorm:"type:varchar(20);not null"`
	Number         string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_sales_document_number"`
	OriginalNumber string    `gorm:"type:varchar(30)"`
	Title          string    `gorm:"type:varchar(60)"`

	ClientName   string    `gorm:"type:varchar(150);not null"`
	SiteLocation string    `gorm:"type:varchar(255)"`
	ClientMobile string    `gorm:"type:varchar(50)"`
	DocumentDate time.Time `gorm:"type:date;not null"`

	// SectionNames maps a section header to its printed name.
	SectionNames datatypes.JSONMap `gorm:"type:jsonb"`
	Terms        datatypes.JSON    `gorm:"type:jsonb"`
	Notes        string            `gorm:"type:text"`
	PreparedBy   string            `gorm:"type:varchar(100)"`
	ApprovedBy   string            `gorm:"type:varchar(100)"`
	TotalAmount  float64           `gorm:"type:numeric(15,2);not null;default:0"`

	PDFURL         string     `gorm:"column:pdf_url;type:text"`
	PDFGeneratedAt *time.Time `gorm:"column:pdf_generated_at"`

	Items []SalesDocumentItem `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (SalesDocument) TableName() string {
	return "sales_documents"
}

type SalesDocumentItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Position    int       `gorm:"not null"`
	Type        ItemType  `gorm:"type:varchar(10);not null"`
	ItemNumber  string    `gorm:"type:varchar(20)"`
	Description string    `gorm:"type:text"`
	Unit        string    `gorm:"type:varchar(20)"`
	Quantity    *float64  `gorm:"type:numeric(15,3)"`
	UnitPrice   *float64  `gorm:"type:numeric(15,2)"`
	Total       *float64  `gorm:"type:numeric(15,2)"`
}

func (SalesDocumentItem) TableName() string {
	return "sales_document_items"
}
