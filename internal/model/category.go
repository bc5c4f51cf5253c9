package model

type Category struct {
	Model
	Name        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:varchar(200);not null" json:"description"`
	Color       string `gorm:"type:varchar(7);not null" json:"color"` // #RRGGBB
	Icon        string `gorm:"type:varchar(50);not null" json:"icon"`
}
