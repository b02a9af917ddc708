package cashbook

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Side string

const (
	SideReceipt Side = "RECEIPT"
	SidePayment Side = "PAYMENT"
)

// Entry is one cash-book line; receipts and payments share the table.
type Entry struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_cash_book_company_date,priority:1"`
	Side        Side           `gorm:"type:varchar(10);not null"`
	EntryDate   time.Time      `gorm:"type:date;not null;index:idx_cash_book_company_date,priority:2"`
	Particulars string         `gorm:"type:varchar(255);not null"`
	Ref         string         `gorm:"type:varchar(50)"`
	Cash        float64        `gorm:"type:numeric(15,2);not null;default:0"`
	Bank        float64        `gorm:"type:numeric(15,2);not null;default:0"`
	Discount    float64        `gorm:"type:numeric(15,2);not null;default:0"`
	CreatedBy   string         `gorm:"type:varchar(64)"`
	CreatedAt   time.Time      `gorm:"not null;default:now()"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Entry) TableName() string {
	return "cash_book_entries"
}
