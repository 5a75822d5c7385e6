package model

import (
	"time"
)

type Brand struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (Brand) TableName() string {
	return "brands"
}
