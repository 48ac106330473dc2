package model

import "time"

// FAQ 常见问题
type FAQ struct {
	ID         string    `gorm:"primaryKey;size:36"`
	Question   string    `gorm:"size:500;not null"`
	Answer     string    `gorm:"size:3000;not null"`
	ViewCount  int       `gorm:"not null;default:0"`
	IsActive   bool      `gorm:"index;not null;default:true"`
	Priority   int       `gorm:"not null;default:1"`
	CategoryID string    `gorm:"size:36;not null;index"`
	Category   Category  `gorm:"foreignKey:CategoryID"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (FAQ) TableName() string {
	return "faqs"
}
