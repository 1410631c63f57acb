package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Asset is a tracked inventory item. Quantity is derived from the three
// condition buckets; call Normalize before persisting.
type Asset struct {
	Model
	Name            string              `gorm:"size:200;not null;index" json:"name"`
	Description     *string             `gorm:"type:text" json:"description"`
	CategoryID      *UUID               `gorm:"index" json:"category_id"`
	ItemTypeID      *UUID               `gorm:"index" json:"item_type_id"`
	LocationID      *UUID               `gorm:"index" json:"location_id"`
	QuantityGood    int                 `gorm:"not null" json:"quantity_good"`
	QuantityFair    int                 `gorm:"not null" json:"quantity_fair"`
	QuantityDamaged int                 `gorm:"not null" json:"quantity_damaged"`
	Quantity        int                 `gorm:"not null" json:"quantity"`
	Condition       Condition           `gorm:"size:20;not null;index" json:"condition"`
	Location        *string             `gorm:"size:200" json:"location"`
	InventoryCode   *string             `gorm:"size:50;uniqueIndex" json:"inventory_code"`
	PurchaseDate    *datatypes.Date     `json:"purchase_date"`
	PurchasePrice   decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"purchase_price"`
	ImageURL        *string             `gorm:"size:500" json:"image_url"`
	Notes           *string             `gorm:"type:text" json:"notes"`
	CreatedBy       UUID                `gorm:"not null;index" json:"created_by"`

	Category       *Category        `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	ItemType       *ItemType        `gorm:"foreignKey:ItemTypeID" json:"itemType,omitempty"`
	LocationDetail *Location        `gorm:"foreignKey:LocationID" json:"locationDetail,omitempty"`
	Creator        *User            `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Logs           []TransactionLog `gorm:"foreignKey:AssetID" json:"logs,omitempty"`
}

func (Asset) TableName() string {
	return "assets"
}

// ComputeQuantity sums the condition buckets with a floor of 1.
func ComputeQuantity(good, fair, damaged int) int {
	total := good + fair + damaged
	if total < 1 {
		return 1
	}
	return total
}

// Normalize applies defaults and recomputes Quantity.
func (a *Asset) Normalize() {
	if a.Condition == "" {
		a.Condition = ConditionGood
	}
	a.Quantity = ComputeQuantity(a.QuantityGood, a.QuantityFair, a.QuantityDamaged)
}

// Snapshot returns a copy without loaded relations, suitable for audit payloads.
func (a Asset) Snapshot() Asset {
	a.Category = nil
	a.ItemType = nil
	a.LocationDetail = nil
	a.Creator = nil
	a.Logs = nil
	return a
}
