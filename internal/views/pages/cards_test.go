package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"gorm.io/gorm"

	"specyfikacje/models"
)

func sampleProduct() models.Product {
	units, packages, layers, tier := 12.0, 8.0, 5.0, 20.0
	perLayer, perPallet := 96, 480
	height := 115.0

	milk := &models.RawMaterial{Model: gorm.Model{ID: 1}, Name: "Mleko w proszku", NameEN: "Milk powder"}
	milk.Nutrition.Protein = 25
	milk.Allergens.Set(models.AllergenMilk, models.AllergenPresent)
	sugar := &models.RawMaterial{Model: gorm.Model{ID: 2}, Name: "Cukier <biały>", NameEN: "Sugar"}
	sugar.Allergens.Set(models.AllergenNuts, models.AllergenMayContain)

	return models.Product{
		EAN:    "5901234123457",
		NamePL: "Czekolada mleczna",
		Logistics: models.Logistics{
			UnitsPerPackage:   &units,
			PackagesPerLayer:  &packages,
			LayersPerPallet:   &layers,
			Collective1Height: &tier,
			UnitsPerLayer:     &perLayer,
			UnitsPerPallet:    &perPallet,
			PalletHeight:      &height,
		},
		Composition: []models.CompositionLine{
			{ID: 2, Position: 2, Percent: 40, RawMaterialID: 2, RawMaterial: sugar},
			{ID: 1, Position: 1, Percent: 50, RawMaterialID: 1, RawMaterial: milk},
		},
	}
}

func TestProductCardRendersDerivedSections(t *testing.T) {
	var buf bytes.Buffer
	if err := ProductCard(NewProductCardData(sampleProduct())).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render product card: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<h1>Czekolada mleczna</h1>",
		"<strong>Mleko</strong> w proszku (50%)",
		"Cukier &lt;biały&gt; (40%)",
		"Milk powder (50%)",
		`<span class="badge badge-present">Mleko</span>`,
		`<span class="badge badge-may-contain">Orzechy</span>`,
		"12,5 g",
		"<td>480</td>",
		"<td>115 cm</td>",
		`<td class="total total-invalid">90</td>`,
		`data-code="percent_total"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in product card:\n%s", want, out)
		}
	}

	milkRow := strings.Index(out, "<td>Mleko w proszku</td>")
	sugarRow := strings.Index(out, "<td>Cukier &lt;biały&gt;</td>")
	if milkRow < 0 || sugarRow < 0 || milkRow > sugarRow {
		t.Fatalf("expected composition rows ordered by position:\n%s", out)
	}
}

func TestProductCardWithoutComposition(t *testing.T) {
	var buf bytes.Buffer
	product := models.Product{EAN: "", NamePL: "Nowy wyrób"}
	if err := ProductCard(NewProductCardData(product)).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render product card: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `data-code="empty_composition"`) {
		t.Fatalf("expected empty composition warning:\n%s", out)
	}
	if !strings.Contains(out, "<p class=\"declaration\">-</p>") {
		t.Fatalf("expected dash for missing declaration:\n%s", out)
	}
}

func TestRawMaterialCardHighlightsComposition(t *testing.T) {
	material := models.RawMaterial{
		Model:           gorm.Model{ID: 4},
		Name:            "Pasta orzechowa",
		CompositionPL:   "orzechy laskowe, olej & sól",
		OriginCountries: "Turcja",
		IngredientShares: []models.IngredientShare{
			{Name: "orzechy laskowe", Percent: 95},
			{Name: "olej & sól", Percent: 5},
		},
		IngredientOrigins: []models.IngredientOrigin{{Name: "orzechy laskowe", Countries: "Turcja, Włochy"}},
	}
	material.Allergens.Set(models.AllergenNuts, models.AllergenPresent)

	var buf bytes.Buffer
	if err := RawMaterialCard(material).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render raw material card: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"<strong>orzechy laskowe</strong>, olej &amp; sól",
		"<td>Turcja, Włochy</td>",
		"<td>95</td>",
		`<span class="badge badge-present">Zawiera</span>`,
		`<span class="badge badge-absent">Nie zawiera</span>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in raw material card:\n%s", want, out)
		}
	}
}

func TestListsRenderLinks(t *testing.T) {
	var buf bytes.Buffer
	items := []ProductLink{{Product: models.Product{NamePL: "Bez EAN"}, Path: "~"}}
	if err := ProductList(items, `"q"`).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render product list: %v", err)
	}
	if !strings.Contains(buf.String(), `href="/app/products/~"`) {
		t.Fatalf("expected sentinel link:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), `value=""q""`) {
		t.Fatalf("expected search value to be escaped:\n%s", buf.String())
	}

	buf.Reset()
	materials := []models.RawMaterial{{Model: gorm.Model{ID: 3}, Name: "Cukier"}}
	if err := RawMaterialList(materials).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render raw material list: %v", err)
	}
	if !strings.Contains(buf.String(), `href="/app/raw-materials/3"`) {
		t.Fatalf("expected raw material link:\n%s", buf.String())
	}

	buf.Reset()
	if err := ProductList(nil, "").Render(context.Background(), &buf); err != nil {
		t.Fatalf("render empty list: %v", err)
	}
	if !strings.Contains(buf.String(), "Brak wyrobów.") {
		t.Fatalf("expected empty state:\n%s", buf.String())
	}
}
