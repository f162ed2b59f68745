package domain

import (
	"context"

	"gorm.io/gorm"
)

// Record 可检索业务实体
type Record struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"size:255;not null;index" json:"name"`
	Body      string         `gorm:"type:text" json:"body"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Record) TableName() string { return "records" }

type RecordRepository interface {
	SearchByName(ctx context.Context, term string) ([]Record, error)
}
