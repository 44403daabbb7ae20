package models

import "time"

// CompositionLine attaches one raw material to a product with its share of the
// recipe. A product may reference the same raw material more than once.
type CompositionLine struct {
	ID            uint    `gorm:"primarykey" json:"id"`
	ProductEAN    string  `gorm:"size:13;index;not null" json:"product_ean"`
	RawMaterialID uint    `gorm:"index;not null" json:"raw_material_id"`
	Percent       float64 `gorm:"not null;default:0" json:"percent"`
	Position      int     `gorm:"not null;default:0" json:"position"`

	RawMaterial *RawMaterial `gorm:"foreignKey:RawMaterialID" json:"raw_material,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
