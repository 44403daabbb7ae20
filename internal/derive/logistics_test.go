package derive

import (
	"testing"

	"specyfikacje/models"
)

func ptr(v float64) *float64 { return &v }

func intValue(t *testing.T, name string, v *int) int {
	t.Helper()
	if v == nil {
		t.Fatalf("%s is nil", name)
	}
	return *v
}

func TestCountPallet(t *testing.T) {
	t.Parallel()

	counts := CountPallet(ptr(12), ptr(8), ptr(5))
	if got := intValue(t, "units per layer", counts.UnitsPerLayer); got != 96 {
		t.Fatalf("units per layer = %d, want 96", got)
	}
	if got := intValue(t, "packages per pallet", counts.PackagesPerPallet); got != 40 {
		t.Fatalf("packages per pallet = %d, want 40", got)
	}
	if got := intValue(t, "units per pallet", counts.UnitsPerPallet); got != 480 {
		t.Fatalf("units per pallet = %d, want 480", got)
	}
}

func TestCountPalletTruncates(t *testing.T) {
	t.Parallel()

	counts := CountPallet(ptr(2.5), ptr(3), nil)
	if got := intValue(t, "units per layer", counts.UnitsPerLayer); got != 7 {
		t.Fatalf("units per layer = %d, want 7", got)
	}
}

func TestCountPalletMissingInputs(t *testing.T) {
	t.Parallel()

	counts := CountPallet(nil, ptr(8), ptr(5))
	if counts.UnitsPerLayer != nil || counts.UnitsPerPallet != nil {
		t.Fatalf("expected unit counts to be absent, got %+v", counts)
	}
	if got := intValue(t, "packages per pallet", counts.PackagesPerPallet); got != 40 {
		t.Fatalf("packages per pallet = %d, want 40", got)
	}

	if counts := CountPallet(ptr(12), nil, nil); counts != (PalletCounts{}) {
		t.Fatalf("expected no counts, got %+v", counts)
	}
}

func TestPalletHeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                       string
		layers, tier1, tier2, tier3 *float64
		want                       *float64
	}{
		{name: "first tier when others empty", layers: ptr(5), tier1: ptr(20), tier2: ptr(0), want: ptr(115)},
		{name: "outermost tier wins", layers: ptr(4), tier1: ptr(10), tier2: ptr(20), tier3: ptr(30), want: ptr(135)},
		{name: "second tier", layers: ptr(2), tier1: ptr(10), tier2: ptr(25), want: ptr(65)},
		{name: "missing layers", tier1: ptr(20)},
		{name: "zero layers", layers: ptr(0), tier1: ptr(20)},
		{name: "no tier height", layers: ptr(5), tier1: ptr(0)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := PalletHeight(tt.layers, tt.tier1, tt.tier2, tt.tier3)
			switch {
			case tt.want == nil && got != nil:
				t.Fatalf("PalletHeight = %v, want nil", *got)
			case tt.want != nil && got == nil:
				t.Fatalf("PalletHeight = nil, want %v", *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Fatalf("PalletHeight = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func baseLogistics() models.Logistics {
	return models.Logistics{
		UnitsPerPackage:   ptr(12),
		PackagesPerLayer:  ptr(8),
		LayersPerPallet:   ptr(5),
		Collective1Height: ptr(20),
		NetWeightUnit:     ptr(0.1),
	}
}

func TestRefreshLogisticsWithoutPreviousComputes(t *testing.T) {
	t.Parallel()

	next := baseLogistics()
	counts, height := RefreshLogistics(nil, &next)
	if !counts || !height {
		t.Fatalf("expected both groups recomputed, got %v %v", counts, height)
	}
	if got := intValue(t, "units per pallet", next.UnitsPerPallet); got != 480 {
		t.Fatalf("units per pallet = %d", got)
	}
	if next.PalletHeight == nil || *next.PalletHeight != 115 {
		t.Fatalf("pallet height = %v, want 115", next.PalletHeight)
	}
}

func TestRefreshLogisticsUnrelatedChangeKeepsDerived(t *testing.T) {
	t.Parallel()

	previous := baseLogistics()
	RefreshLogistics(nil, &previous)

	next := baseLogistics()
	next.NetWeightUnit = ptr(0.25)
	tampered := 1
	next.UnitsPerPallet = &tampered
	next.PalletHeight = ptr(1)

	counts, height := RefreshLogistics(&previous, &next)
	if counts || height {
		t.Fatalf("expected nothing recomputed, got %v %v", counts, height)
	}
	if got := intValue(t, "units per pallet", next.UnitsPerPallet); got != 480 {
		t.Fatalf("units per pallet = %d, want carried over 480", got)
	}
	if *next.PalletHeight != 115 {
		t.Fatalf("pallet height = %v, want carried over 115", *next.PalletHeight)
	}
}

func TestRefreshLogisticsRecomputesOnlyAffectedGroup(t *testing.T) {
	t.Parallel()

	previous := baseLogistics()
	RefreshLogistics(nil, &previous)

	next := baseLogistics()
	next.UnitsPerPackage = ptr(10)
	counts, height := RefreshLogistics(&previous, &next)
	if !counts || height {
		t.Fatalf("unit change: got counts=%v height=%v", counts, height)
	}
	if got := intValue(t, "units per pallet", next.UnitsPerPallet); got != 400 {
		t.Fatalf("units per pallet = %d, want 400", got)
	}

	next = baseLogistics()
	next.Collective2Height = ptr(30)
	counts, height = RefreshLogistics(&previous, &next)
	if counts || !height {
		t.Fatalf("tier change: got counts=%v height=%v", counts, height)
	}
	if *next.PalletHeight != 165 {
		t.Fatalf("pallet height = %v, want 165", *next.PalletHeight)
	}

	next = baseLogistics()
	next.LayersPerPallet = ptr(6)
	counts, height = RefreshLogistics(&previous, &next)
	if !counts || !height {
		t.Fatalf("layer change: got counts=%v height=%v", counts, height)
	}
}

func TestRefreshLogisticsClearedInputClearsDerived(t *testing.T) {
	t.Parallel()

	previous := baseLogistics()
	RefreshLogistics(nil, &previous)

	next := baseLogistics()
	next.LayersPerPallet = nil
	RefreshLogistics(&previous, &next)
	if next.PackagesPerPallet != nil || next.UnitsPerPallet != nil || next.PalletHeight != nil {
		t.Fatalf("expected layer-dependent values cleared, got %+v", next)
	}
	if got := intValue(t, "units per layer", next.UnitsPerLayer); got != 96 {
		t.Fatalf("units per layer = %d, want 96", got)
	}
}

func TestRefreshLogisticsIsIdempotent(t *testing.T) {
	t.Parallel()

	first := baseLogistics()
	RefreshLogistics(nil, &first)
	second := first
	counts, height := RefreshLogistics(&first, &second)
	if counts || height {
		t.Fatal("refreshing an unchanged record recomputed values")
	}
	if *second.UnitsPerLayer != *first.UnitsPerLayer || *second.PalletHeight != *first.PalletHeight {
		t.Fatalf("values drifted: %+v vs %+v", second, first)
	}
}
