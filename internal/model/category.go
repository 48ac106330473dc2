package model

import "time"

// Category FAQ分类
type Category struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Name         string    `gorm:"size:100;not null;uniqueIndex:idx_categories_name"`
	Description  string    `gorm:"size:500"`
	DisplayOrder int       `gorm:"default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
	FAQs         []FAQ     `gorm:"foreignKey:CategoryID"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
