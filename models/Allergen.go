package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Allergen names one of the fourteen regulated allergen groups.
type Allergen string

const (
	AllergenGluten         Allergen = "gluten"
	AllergenCrustaceans    Allergen = "crustaceans"
	AllergenEggs           Allergen = "eggs"
	AllergenFish           Allergen = "fish"
	AllergenPeanuts        Allergen = "peanuts"
	AllergenSoy            Allergen = "soy"
	AllergenMilk           Allergen = "milk"
	AllergenNuts           Allergen = "nuts"
	AllergenCelery         Allergen = "celery"
	AllergenMustard        Allergen = "mustard"
	AllergenSesame         Allergen = "sesame"
	AllergenSulphurDioxide Allergen = "sulphur_dioxide"
	AllergenLupin          Allergen = "lupin"
	AllergenMolluscs       Allergen = "molluscs"
)

var allAllergens = []Allergen{
	AllergenGluten,
	AllergenCrustaceans,
	AllergenEggs,
	AllergenFish,
	AllergenPeanuts,
	AllergenSoy,
	AllergenMilk,
	AllergenNuts,
	AllergenCelery,
	AllergenMustard,
	AllergenSesame,
	AllergenSulphurDioxide,
	AllergenLupin,
	AllergenMolluscs,
}

// AllAllergens returns the fourteen allergen groups in declaration order.
func AllAllergens() []Allergen {
	result := make([]Allergen, len(allAllergens))
	copy(result, allAllergens)
	return result
}

var allergenLabels = map[Allergen]string{
	AllergenGluten:         "Gluten",
	AllergenCrustaceans:    "Skorupiaki",
	AllergenEggs:           "Jaja",
	AllergenFish:           "Ryby",
	AllergenPeanuts:        "Orzeszki ziemne",
	AllergenSoy:            "Soja",
	AllergenMilk:           "Mleko",
	AllergenNuts:           "Orzechy",
	AllergenCelery:         "Seler",
	AllergenMustard:        "Gorczyca",
	AllergenSesame:         "Sezam",
	AllergenSulphurDioxide: "Dwutlenek siarki",
	AllergenLupin:          "Łubin",
	AllergenMolluscs:       "Mięczaki",
}

// Label returns the Polish display name of the allergen group.
func (a Allergen) Label() string {
	if label, ok := allergenLabels[a]; ok {
		return label
	}
	return string(a)
}

// AllergenState is the tri-state allergen flag. Higher values are more severe.
type AllergenState int

const (
	AllergenAbsent AllergenState = iota
	AllergenMayContain
	AllergenPresent
)

const (
	labelAbsent     = "Nie zawiera"
	labelMayContain = "Może zawierać"
	labelPresent    = "Zawiera"
)

// String returns the label stored in the database and shown to users.
func (s AllergenState) String() string {
	switch s {
	case AllergenPresent:
		return labelPresent
	case AllergenMayContain:
		return labelMayContain
	default:
		return labelAbsent
	}
}

// ParseAllergenState maps a stored or submitted label onto a state. Unknown
// and empty values resolve to AllergenAbsent.
func ParseAllergenState(value string) AllergenState {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case strings.ToLower(labelPresent), "present", "contains", "2":
		return AllergenPresent
	case strings.ToLower(labelMayContain), "may_contain", "may contain", "traces", "1":
		return AllergenMayContain
	default:
		return AllergenAbsent
	}
}

// MoreSevere returns whichever of s and other ranks higher.
func (s AllergenState) MoreSevere(other AllergenState) AllergenState {
	if other.normalized() > s.normalized() {
		return other.normalized()
	}
	return s.normalized()
}

func (s AllergenState) normalized() AllergenState {
	if s < AllergenAbsent || s > AllergenPresent {
		return AllergenAbsent
	}
	return s
}

func (s AllergenState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *AllergenState) UnmarshalText(text []byte) error {
	*s = ParseAllergenState(string(text))
	return nil
}

// Value stores the state as its label.
func (s AllergenState) Value() (driver.Value, error) {
	return s.String(), nil
}

// Scan reads a label column. NULL scans as AllergenAbsent.
func (s *AllergenState) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*s = AllergenAbsent
	case string:
		*s = ParseAllergenState(v)
	case []byte:
		*s = ParseAllergenState(string(v))
	case int64:
		*s = AllergenState(v).normalized()
	default:
		return fmt.Errorf("unsupported allergen state type %T", value)
	}
	return nil
}

// GormDataType keeps the column textual on every dialect.
func (AllergenState) GormDataType() string {
	return "string"
}

// AllergenProfile carries one state per allergen group.
type AllergenProfile struct {
	Gluten         AllergenState `gorm:"size:32" json:"gluten"`
	Crustaceans    AllergenState `gorm:"size:32" json:"crustaceans"`
	Eggs           AllergenState `gorm:"size:32" json:"eggs"`
	Fish           AllergenState `gorm:"size:32" json:"fish"`
	Peanuts        AllergenState `gorm:"size:32" json:"peanuts"`
	Soy            AllergenState `gorm:"size:32" json:"soy"`
	Milk           AllergenState `gorm:"size:32" json:"milk"`
	Nuts           AllergenState `gorm:"size:32" json:"nuts"`
	Celery         AllergenState `gorm:"size:32" json:"celery"`
	Mustard        AllergenState `gorm:"size:32" json:"mustard"`
	Sesame         AllergenState `gorm:"size:32" json:"sesame"`
	SulphurDioxide AllergenState `gorm:"size:32" json:"sulphur_dioxide"`
	Lupin          AllergenState `gorm:"size:32" json:"lupin"`
	Molluscs       AllergenState `gorm:"size:32" json:"molluscs"`
}

// State returns the flag recorded for the allergen group.
func (p AllergenProfile) State(a Allergen) AllergenState {
	if field := p.field(a); field != nil {
		return field.normalized()
	}
	return AllergenAbsent
}

// Set records the flag for the allergen group. Unknown groups are ignored.
func (p *AllergenProfile) Set(a Allergen, state AllergenState) {
	if field := p.field(a); field != nil {
		*field = state.normalized()
	}
}

func (p *AllergenProfile) field(a Allergen) *AllergenState {
	switch a {
	case AllergenGluten:
		return &p.Gluten
	case AllergenCrustaceans:
		return &p.Crustaceans
	case AllergenEggs:
		return &p.Eggs
	case AllergenFish:
		return &p.Fish
	case AllergenPeanuts:
		return &p.Peanuts
	case AllergenSoy:
		return &p.Soy
	case AllergenMilk:
		return &p.Milk
	case AllergenNuts:
		return &p.Nuts
	case AllergenCelery:
		return &p.Celery
	case AllergenMustard:
		return &p.Mustard
	case AllergenSesame:
		return &p.Sesame
	case AllergenSulphurDioxide:
		return &p.SulphurDioxide
	case AllergenLupin:
		return &p.Lupin
	case AllergenMolluscs:
		return &p.Molluscs
	}
	return nil
}
