package models

import "time"

// Category represents categories table
type Category struct {
	CategoryID   uint      `gorm:"primaryKey;column:category_id" json:"category_id"`
	CategoryName string    `gorm:"type:varchar(100);not null;unique" json:"category_name"`
	Description  *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categories"
}
