package models

import (
	"time"

	"gorm.io/datatypes"
)

// Product is a finished good ("wyrób") identified by its unit EAN.
type Product struct {
	EAN         string `gorm:"primaryKey;size:13" json:"ean"`
	CartonEAN   string `gorm:"size:14" json:"carton_ean"`
	InternalID  string `gorm:"size:6" json:"internal_id"`
	NamePL      string `gorm:"not null" json:"name_pl"`
	NameEN      string `json:"name_en"`
	LegalNamePL string `gorm:"column:legal_name_pl" json:"legal_name_pl"`
	LegalNameEN string `gorm:"column:legal_name_en" json:"legal_name_en"`
	Category    string `json:"category"`
	ProductType string `gorm:"not null;default:inne" json:"product_type"`
	NetMass     string `json:"net_mass"`
	ImageURL    string `json:"image_url"`

	TasteDescription      string `json:"taste"`
	SmellDescription      string `json:"smell"`
	ColourDescription     string `json:"colour"`
	AppearanceDescription string `json:"appearance"`
	CrossSectionDesc      string `json:"cross_section"`

	StorageConditions string `gorm:"type:text" json:"storage_conditions"`
	ShelfLife         string `json:"shelf_life"`
	DateFormat        string `json:"date_format"`
	AdditionalInfo    string `gorm:"type:text" json:"additional_info"`
	CNCode            string `gorm:"column:cn_code" json:"cn_code"`
	PKWiUCode         string `gorm:"column:pkwiu_code" json:"pkwiu_code"`

	Certificates datatypes.JSONSlice[Certificate] `json:"certificates"`

	Logistics Logistics `gorm:"embedded;embeddedPrefix:logistics_" json:"logistics"`

	Composition []CompositionLine `gorm:"foreignKey:ProductEAN;references:EAN" json:"composition"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Certificate is a quality certificate attached to a product.
type Certificate struct {
	Kind       string `json:"kind"`
	Identifier string `json:"identifier"`
	ValidUntil string `json:"valid_until"`
}

// Logistics holds packaging dimensions (cm), weights (kg) and palletisation.
// UnitsPerLayer, PackagesPerPallet, UnitsPerPallet and PalletHeight are
// derived and only cached here.
type Logistics struct {
	SoloHeight        *float64 `json:"solo_height"`
	SoloWidth         *float64 `json:"solo_width"`
	SoloDepth         *float64 `json:"solo_depth"`
	UnitHeight        *float64 `json:"unit_height"`
	UnitWidth         *float64 `json:"unit_width"`
	UnitDepth         *float64 `json:"unit_depth"`
	Collective1Height *float64 `json:"collective1_height"`
	Collective1Width  *float64 `json:"collective1_width"`
	Collective1Depth  *float64 `json:"collective1_depth"`
	Collective2Height *float64 `json:"collective2_height"`
	Collective2Width  *float64 `json:"collective2_width"`
	Collective2Depth  *float64 `json:"collective2_depth"`
	Collective3Height *float64 `json:"collective3_height"`
	Collective3Width  *float64 `json:"collective3_width"`
	Collective3Depth  *float64 `json:"collective3_depth"`
	PalletType        string   `json:"pallet_type"`

	NetWeightUnit      *float64 `json:"net_weight_unit"`
	GrossWeightUnit    *float64 `json:"gross_weight_unit"`
	NetWeightPackage   *float64 `json:"net_weight_package"`
	GrossWeightPackage *float64 `json:"gross_weight_package"`
	NetWeightPallet    *float64 `json:"net_weight_pallet"`
	GrossWeightPallet  *float64 `json:"gross_weight_pallet"`

	UnitsPerPackage  *float64 `json:"units_per_package"`
	PackagesPerLayer *float64 `json:"packages_per_layer"`
	LayersPerPallet  *float64 `json:"layers_per_pallet"`

	UnitsPerLayer     *int     `json:"units_per_layer"`
	PackagesPerPallet *int     `json:"packages_per_pallet"`
	UnitsPerPallet    *int     `json:"units_per_pallet"`
	PalletHeight      *float64 `json:"pallet_height"`
}
