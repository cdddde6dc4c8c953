package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Product struct {
	Id          string          `gorm:"type:text;primaryKey"`
	Name        string          `gorm:"type:text;not null"`
	Category    string          `gorm:"type:text;not null;index"`
	Brand       string          `gorm:"type:text;not null;index"`
	Price       float64         `gorm:"not null;index"`
	Description string          `gorm:"type:text"`
	Specs       datatypes.JSON  `gorm:"type:jsonb"`
	Features    datatypes.JSON  `gorm:"type:jsonb"`
	Tags        datatypes.JSON  `gorm:"type:jsonb"`
	Embedding   pgvector.Vector `gorm:"type:vector(768)"` // matches Gemini text-embedding-004
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}
