// Copyright 2023 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package analysis

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/sboehler/salesperf/lib/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(sku string, qty int64, price, discount string) model.LineItem {
	return model.LineItem{SKU: sku, Quantity: qty, SalePrice: dec(price), Discount: dec(discount)}
}

func defaults() Config {
	return Config{Bonus: BonusByProfit}
}

func TestAnalyzeSingleSeller(t *testing.T) {
	var (
		ds = &model.Dataset{
			Sellers:  []model.Seller{{ID: "s1", FirstName: "A", LastName: "B"}},
			Products: []model.Product{{SKU: "P1", PurchasePrice: dec("5")}},
			PurchaseRecords: []model.PurchaseRecord{
				{SellerID: "s1", Items: []model.LineItem{item("P1", 2, "10", "0")}},
			},
		}
		want = []model.SellerResult{
			{
				SellerID:    "s1",
				Name:        "A B",
				Revenue:     dec("20.00"),
				Profit:      dec("10.00"),
				SalesCount:  1,
				Bonus:       dec("1.50"),
				TopProducts: []model.ProductQuantity{{SKU: "P1", Quantity: 2}},
			},
		}
	)

	got, err := Analyze(ds, defaults())

	if err != nil {
		t.Fatalf("Analyze() returned unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected diff (-want/+got):\n%s", diff)
	}
}

func TestAnalyzeInvalidInput(t *testing.T) {
	var (
		sellers  = []model.Seller{{ID: "s1"}}
		products = []model.Product{{SKU: "P1"}}
		records  = []model.PurchaseRecord{{SellerID: "s1"}}
	)
	tests := []struct {
		desc string
		ds   *model.Dataset
	}{
		{"nil dataset", nil},
		{"no sellers", &model.Dataset{Products: products, PurchaseRecords: records}},
		{"no products", &model.Dataset{Sellers: sellers, PurchaseRecords: records}},
		{"no purchase records", &model.Dataset{Sellers: sellers, Products: products}},
		{"empty purchase records", &model.Dataset{Sellers: sellers, Products: products, PurchaseRecords: []model.PurchaseRecord{}}},
		{"everything empty", &model.Dataset{}},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			got, err := Analyze(test.ds, defaults())

			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Analyze() returned error %v, want %v", err, ErrInvalidInput)
			}
			if got != nil {
				t.Fatalf("Analyze() returned partial result %v", got)
			}
		})
	}
}

func TestAnalyzeInvalidInputPrecedesConfiguration(t *testing.T) {
	_, err := Analyze(&model.Dataset{}, Config{})

	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Analyze() returned error %v, want %v", err, ErrInvalidInput)
	}
}

func TestAnalyzeMissingConfiguration(t *testing.T) {
	ds := &model.Dataset{
		Sellers:         []model.Seller{{ID: "s1"}},
		Products:        []model.Product{{SKU: "P1"}},
		PurchaseRecords: []model.PurchaseRecord{{SellerID: "s1"}},
	}

	got, err := Analyze(ds, Config{OnOmit: func(Omission) {}})

	if !errors.Is(err, ErrMissingConfiguration) {
		t.Fatalf("Analyze() returned error %v, want %v", err, ErrMissingConfiguration)
	}
	if got != nil {
		t.Fatalf("Analyze() returned partial result %v", got)
	}
}

func TestAnalyzeEitherStrategySuffices(t *testing.T) {
	ds := &model.Dataset{
		Sellers:  []model.Seller{{ID: "s1"}},
		Products: []model.Product{{SKU: "P1", PurchasePrice: dec("1")}},
		PurchaseRecords: []model.PurchaseRecord{
			{SellerID: "s1", Items: []model.LineItem{item("P1", 1, "3", "0")}},
		},
	}
	for _, cfg := range []Config{{Revenue: SimpleRevenue}, {Bonus: BonusByProfit}, {Revenue: SimpleRevenue, Bonus: BonusByProfit}} {
		got, err := Analyze(ds, cfg)
		if err != nil {
			t.Fatalf("Analyze() returned unexpected error: %v", err)
		}
		if !got[0].Bonus.Equal(dec("0.30")) {
			t.Errorf("bonus = %s, want 0.30", got[0].Bonus)
		}
	}
}

// sellersWithProfits creates one seller per profit, each with a single
// sale of a product without purchase cost.
func sellersWithProfits(profits ...string) *model.Dataset {
	ds := &model.Dataset{
		Products: []model.Product{{SKU: "P", PurchasePrice: decimal.Zero}},
	}
	for i, p := range profits {
		id := fmt.Sprintf("s%d", i+1)
		ds.Sellers = append(ds.Sellers, model.Seller{ID: id, FirstName: "Seller", LastName: id})
		ds.PurchaseRecords = append(ds.PurchaseRecords, model.PurchaseRecord{
			SellerID: id,
			Items:    []model.LineItem{item("P", 1, p, "0")},
		})
	}
	return ds
}

func TestAnalyzeBonusTiers(t *testing.T) {
	type ranked struct {
		SellerID string
		Profit   decimal.Decimal
		Bonus    decimal.Decimal
	}
	var (
		ds   = sellersWithProfits("100", "200", "300", "400", "50")
		want = []ranked{
			{"s4", dec("400"), dec("60")},
			{"s3", dec("300"), dec("30")},
			{"s2", dec("200"), dec("20")},
			{"s1", dec("100"), dec("5")},
			{"s5", dec("50"), dec("0")},
		}
	)

	res, err := Analyze(ds, defaults())

	if err != nil {
		t.Fatalf("Analyze() returned unexpected error: %v", err)
	}
	var got []ranked
	for _, r := range res {
		got = append(got, ranked{r.SellerID, r.Profit, r.Bonus})
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected diff (-want/+got):\n%s", diff)
	}
}

func TestAnalyzeProfitOrderIsStable(t *testing.T) {
	ds := sellersWithProfits("10", "30", "10", "30", "20")

	res, err := Analyze(ds, defaults())

	if err != nil {
		t.Fatalf("Analyze() returned unexpected error: %v", err)
	}
	var got []string
	for i, r := range res {
		got = append(got, r.SellerID)
		if i > 0 && res[i-1].Profit.LessThan(r.Profit) {
			t.Errorf("result %d has profit %s > %s", i, r.Profit, res[i-1].Profit)
		}
	}
	if diff := cmp.Diff([]string{"s2", "s4", "s5", "s1", "s3"}, got); diff != "" {
		t.Fatalf("unexpected diff (-want/+got):\n%s", diff)
	}
}

func TestAnalyzeRoundsTotalsOnce(t *testing.T) {
	var (
		ds = &model.Dataset{
			Sellers:  []model.Seller{{ID: "s1"}},
			Products: []model.Product{{SKU: "P1"}},
			PurchaseRecords: []model.PurchaseRecord{
				{SellerID: "s1", Items: []model.LineItem{item("P1", 1, "1", "0"), item("P1", 1, "1", "0")}},
				{SellerID: "s1", Items: []model.LineItem{item("P1", 1, "1", "0")}},
			},
		}
		cfg = Config{
			Revenue: func(model.LineItem, model.Product) decimal.Decimal {
				return dec("0.005")
			},
		}
	)

	got, err := Analyze(ds, cfg)

	if err != nil {
		t.Fatalf("Analyze() returned unexpected error: %v", err)
	}
	// 3 × 0.005 = 0.015 rounds to 0.02; rounding every item would give 0.03.
	if !got[0].Revenue.Equal(dec("0.02")) {
		t.Errorf("revenue = %s, want 0.02", got[0].Revenue)
	}
	if !got[0].Profit.Equal(dec("0.02")) {
		t.Errorf("profit = %s, want 0.02", got[0].Profit)
	}
}

func TestAnalyzeOmissions(t *testing.T) {
	var (
		ds = &model.Dataset{
			Sellers:  []model.Seller{{ID: "s1", FirstName: "A", LastName: "B"}, {ID: "s2", FirstName: "C", LastName: "D"}},
			Products: []model.Product{{SKU: "P1", PurchasePrice: dec("1")}},
			PurchaseRecords: []model.PurchaseRecord{
				{ReceiptID: "r1", SellerID: "ghost", Items: []model.LineItem{item("P1", 5, "10", "0")}},
				{ReceiptID: "r2", SellerID: "s1", Items: []model.LineItem{item("P1", 1, "10", "0"), item("X", 4, "10", "0")}},
			},
		}
		omissions []Omission
		cfg       = Config{Bonus: BonusByProfit, OnOmit: func(o Omission) { omissions = append(omissions, o) }}
		want      = []model.SellerResult{
			{
				SellerID:    "s1",
				Name:        "A B",
				Revenue:     dec("10"),
				Profit:      dec("9"),
				SalesCount:  1,
				Bonus:       dec("1.35"),
				TopProducts: []model.ProductQuantity{{SKU: "P1", Quantity: 1}},
			},
			{
				SellerID:    "s2",
				Name:        "C D",
				TopProducts: []model.ProductQuantity{},
			},
		}
		wantOmissions = []Omission{
			{Kind: UnknownSeller, Record: 0, ReceiptID: "r1", SellerID: "ghost"},
			{Kind: UnknownProduct, Record: 1, ReceiptID: "r2", SellerID: "s1", SKU: "X"},
		}
	)

	got, err := Analyze(ds, cfg)

	if err != nil {
		t.Fatalf("Analyze() returned unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected diff (-want/+got):\n%s", diff)
	}
	if diff := cmp.Diff(wantOmissions, omissions); diff != "" {
		t.Fatalf("unexpected omissions (-want/+got):\n%s", diff)
	}
}

func TestAnalyzeTopProducts(t *testing.T) {
	var (
		ds = &model.Dataset{
			Sellers: []model.Seller{{ID: "s1"}},
		}
		rec  = model.PurchaseRecord{SellerID: "s1"}
		want []model.ProductQuantity
	)
	// P00..P11 sell 1 each, then P05 and P09 sell 2 more, P07 one more.
	for i := 0; i < 12; i++ {
		sku := fmt.Sprintf("P%02d", i)
		ds.Products = append(ds.Products, model.Product{SKU: sku})
		rec.Items = append(rec.Items, item(sku, 1, "1", "0"))
	}
	rec.Items = append(rec.Items, item("P09", 2, "1", "0"), item("P05", 2, "1", "0"), item("P07", 1, "1", "0"))
	ds.PurchaseRecords = []model.PurchaseRecord{rec}
	want = []model.ProductQuantity{
		{SKU: "P05", Quantity: 3},
		{SKU: "P09", Quantity: 3},
		{SKU: "P07", Quantity: 2},
		{SKU: "P00", Quantity: 1},
		{SKU: "P01", Quantity: 1},
		{SKU: "P02", Quantity: 1},
		{SKU: "P03", Quantity: 1},
		{SKU: "P04", Quantity: 1},
		{SKU: "P06", Quantity: 1},
		{SKU: "P08", Quantity: 1},
	}

	got, err := Analyze(ds, defaults())

	if err != nil {
		t.Fatalf("Analyze() returned unexpected error: %v", err)
	}
	if diff := cmp.Diff(want, got[0].TopProducts); diff != "" {
		t.Fatalf("unexpected diff (-want/+got):\n%s", diff)
	}
}

func TestAnalyzeDuplicateReferences(t *testing.T) {
	ds := &model.Dataset{
		Sellers: []model.Seller{
			{ID: "s1", FirstName: "Old", LastName: "Name"},
			{ID: "s2", FirstName: "Other", LastName: "Seller"},
			{ID: "s1", FirstName: "New", LastName: "Name"},
		},
		Products: []model.Product{
			{SKU: "P1", PurchasePrice: dec("1")},
			{SKU: "P1", PurchasePrice: dec("4")},
		},
		PurchaseRecords: []model.PurchaseRecord{
			{SellerID: "s1", Items: []model.LineItem{item("P1", 1, "10", "0")}},
		},
	}

	got, err := Analyze(ds, defaults())

	if err != nil {
		t.Fatalf("Analyze() returned unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].Name != "New Name" {
		t.Errorf("name = %q, want %q", got[0].Name, "New Name")
	}
	if !got[0].Profit.Equal(dec("6")) {
		t.Errorf("profit = %s, want 6", got[0].Profit)
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	ds := sellersWithProfits("12.345", "7.5", "7.5", "100.01")

	first, err := Analyze(ds, Config{Revenue: SimpleRevenue})
	if err != nil {
		t.Fatalf("Analyze() returned unexpected error: %v", err)
	}
	second, err := Analyze(ds, Config{Revenue: SimpleRevenue})
	if err != nil {
		t.Fatalf("Analyze() returned unexpected error: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("unexpected diff (-first/+second):\n%s", diff)
	}
}
