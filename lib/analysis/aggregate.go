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
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sboehler/salesperf/lib/model"
)

// OmissionKind classifies dropped input.
type OmissionKind int

const (
	// UnknownSeller means that a whole purchase record was dropped.
	UnknownSeller OmissionKind = iota
	// UnknownProduct means that a single line item was dropped.
	UnknownProduct
)

func (k OmissionKind) String() string {
	switch k {
	case UnknownSeller:
		return "unknown seller"
	case UnknownProduct:
		return "unknown product"
	}
	return ""
}

// Omission describes input which did not contribute to the results.
type Omission struct {
	Kind      OmissionKind
	Record    int
	ReceiptID string
	SellerID  string
	SKU       string
}

func (o Omission) String() string {
	switch o.Kind {
	case UnknownSeller:
		return fmt.Sprintf("record %d (receipt %q): %s %q, record skipped", o.Record, o.ReceiptID, o.Kind, o.SellerID)
	default:
		return fmt.Sprintf("record %d (receipt %q): %s %q, item skipped", o.Record, o.ReceiptID, o.Kind, o.SKU)
	}
}

// aggregate books all purchase records onto the seller accumulators, in
// input order. Records of unknown sellers and items of unknown products
// are skipped. Totals are rounded once, after all records are booked.
func aggregate(records []model.PurchaseRecord, sellers *sellerIndex, products map[string]model.Product, revenue RevenueFunc, omit func(Omission)) {
	for i, rec := range records {
		acc, ok := sellers.get(rec.SellerID)
		if !ok {
			omit(Omission{Kind: UnknownSeller, Record: i, ReceiptID: rec.ReceiptID, SellerID: rec.SellerID})
			continue
		}
		acc.SalesCount++
		for _, item := range rec.Items {
			product, ok := products[item.SKU]
			if !ok {
				omit(Omission{Kind: UnknownProduct, Record: i, ReceiptID: rec.ReceiptID, SellerID: rec.SellerID, SKU: item.SKU})
				continue
			}
			var (
				rev  = revenue(item, product)
				cost = product.PurchasePrice.Mul(decimal.NewFromInt(item.Quantity))
			)
			acc.Revenue = acc.Revenue.Add(rev)
			acc.Profit = acc.Profit.Add(rev.Sub(cost))
			acc.addQuantity(item.SKU, item.Quantity)
		}
	}
	for _, acc := range sellers.accs {
		acc.finalize()
	}
}
