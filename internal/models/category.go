package models

// Category is a broad grouping of assets.
type Category struct {
	Model
	Name        string  `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	Assets      []Asset `gorm:"foreignKey:CategoryID" json:"assets,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}
