package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Company is the issuing business printed in every document header.
type Company struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string         `gorm:"type:varchar(150);not null"`
	Location     string         `gorm:"type:varchar(255)"`
	Phone        string         `gorm:"type:varchar(50)"`
	Email        string         `gorm:"type:varchar(255);index"`
	LogoURL      string         `gorm:"type:text"`
	WatermarkURL string         `gorm:"type:text"`
	CurrencyCode string         `gorm:"type:varchar(8);not null;default:'KES'"`
	DefaultTerms datatypes.JSON `gorm:"type:jsonb"`
	IsActive     bool           `gorm:"not null;default:true"`
	CreatedAt    time.Time      `gorm:"not null;default:now()"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}
