package client

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a customer that sales documents are addressed to.
type Client struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_client_company_name"`
	Name         string         `gorm:"size:255;not null;uniqueIndex:uq_client_company_name"`
	SiteLocation string         `gorm:"size:255"`
	Mobile       string         `gorm:"size:50"`
	Email        string         `gorm:"size:255"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Client) TableName() string {
	return "clients"
}
