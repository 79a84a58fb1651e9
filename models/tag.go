package models

// Tag names are globally unique and stored lowercased.
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:64"`
}

// TableName specifies the table name for the Tag model.
func (Tag) TableName() string {
	return "tags"
}
