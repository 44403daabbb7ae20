package derive

import (
	"math"

	"specyfikacje/models"
)

// PalletCarrierHeight is the height in centimetres added for the pallet itself.
const PalletCarrierHeight = 15.0

// PalletCounts are the unit and package counts derived from the
// palletisation inputs. A nil count means its inputs are incomplete.
type PalletCounts struct {
	UnitsPerLayer     *int `json:"units_per_layer"`
	PackagesPerPallet *int `json:"packages_per_pallet"`
	UnitsPerPallet    *int `json:"units_per_pallet"`
}

// CountPallet derives per-layer and per-pallet counts from units per package,
// packages per layer and layers per pallet.
func CountPallet(unitsPerPackage, packagesPerLayer, layersPerPallet *float64) PalletCounts {
	var counts PalletCounts
	u, k, l := unitsPerPackage, packagesPerLayer, layersPerPallet
	if u != nil && k != nil {
		counts.UnitsPerLayer = floorInt((*u) * (*k))
	}
	if k != nil && l != nil {
		counts.PackagesPerPallet = floorInt((*k) * (*l))
	}
	if u != nil && k != nil && l != nil {
		counts.UnitsPerPallet = floorInt((*u) * (*k) * (*l))
	}
	return counts
}

// PalletHeight returns layers × package height + PalletCarrierHeight, using the
// outermost collective package tier with a positive height (3, then 2, then 1).
// It returns nil when no tier has a height or layers is missing or not positive.
func PalletHeight(layersPerPallet, tier1, tier2, tier3 *float64) *float64 {
	if !positive(layersPerPallet) {
		return nil
	}

	var selected *float64
	switch {
	case positive(tier3):
		selected = tier3
	case positive(tier2):
		selected = tier2
	case positive(tier1):
		selected = tier1
	default:
		return nil
	}

	height := (*layersPerPallet)*(*selected) + PalletCarrierHeight
	return &height
}

// RefreshLogistics brings the derived fields of next up to date. previous is
// the last persisted state, or nil when nothing was derived yet. Counts are
// recomputed only when their inputs differ from previous and the pallet height
// only when its inputs differ; otherwise the previous values carry over, so
// derived values submitted by a client never stick. It reports which groups
// were recomputed.
func RefreshLogistics(previous *models.Logistics, next *models.Logistics) (countsRecomputed, heightRecomputed bool) {
	if next == nil {
		return false, false
	}

	if previous == nil || countInputsChanged(previous, next) {
		counts := CountPallet(next.UnitsPerPackage, next.PackagesPerLayer, next.LayersPerPallet)
		next.UnitsPerLayer = counts.UnitsPerLayer
		next.PackagesPerPallet = counts.PackagesPerPallet
		next.UnitsPerPallet = counts.UnitsPerPallet
		countsRecomputed = true
	} else {
		next.UnitsPerLayer = cloneInt(previous.UnitsPerLayer)
		next.PackagesPerPallet = cloneInt(previous.PackagesPerPallet)
		next.UnitsPerPallet = cloneInt(previous.UnitsPerPallet)
	}

	if previous == nil || heightInputsChanged(previous, next) {
		next.PalletHeight = PalletHeight(next.LayersPerPallet, next.Collective1Height, next.Collective2Height, next.Collective3Height)
		heightRecomputed = true
	} else {
		next.PalletHeight = cloneFloat(previous.PalletHeight)
	}

	return countsRecomputed, heightRecomputed
}

func countInputsChanged(a, b *models.Logistics) bool {
	return !sameFloat(a.UnitsPerPackage, b.UnitsPerPackage) ||
		!sameFloat(a.PackagesPerLayer, b.PackagesPerLayer) ||
		!sameFloat(a.LayersPerPallet, b.LayersPerPallet)
}

func heightInputsChanged(a, b *models.Logistics) bool {
	return !sameFloat(a.LayersPerPallet, b.LayersPerPallet) ||
		!sameFloat(a.Collective1Height, b.Collective1Height) ||
		!sameFloat(a.Collective2Height, b.Collective2Height) ||
		!sameFloat(a.Collective3Height, b.Collective3Height)
}

func sameFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func positive(v *float64) bool {
	return v != nil && *v > 0
}

func floorInt(v float64) *int {
	n := int(math.Floor(v))
	return &n
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	f := *v
	return &f
}
