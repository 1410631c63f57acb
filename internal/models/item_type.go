package models

// ItemType names a kind of physical object, e.g. "Computer" or "Desk".
type ItemType struct {
	Model
	Name         string       `gorm:"size:100;not null" json:"name"`
	ItemCategory ItemCategory `gorm:"size:20;not null;index" json:"item_category"`
	Description  *string      `gorm:"type:text" json:"description"`
	Icon         *string      `gorm:"size:255" json:"icon"`
	Assets       []Asset      `gorm:"foreignKey:ItemTypeID" json:"assets,omitempty"`
}

func (ItemType) TableName() string {
	return "item_types"
}
