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

// Package model contains the sales data: the reference catalogs, the
// purchase records and the per-seller results computed from them.
package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Seller is a member of the seller roster.
type Seller struct {
	ID        string `json:"id" yaml:"id"`
	FirstName string `json:"first_name" yaml:"first_name"`
	LastName  string `json:"last_name" yaml:"last_name"`
}

// Name returns the display name of the seller.
func (s Seller) Name() string {
	return fmt.Sprintf("%s %s", s.FirstName, s.LastName)
}

// Product is an entry in the product catalog.
type Product struct {
	SKU           string          `json:"sku" yaml:"sku"`
	PurchasePrice decimal.Decimal `json:"purchase_price" yaml:"purchase_price"`
}

// LineItem is one product position within a purchase record.
type LineItem struct {
	SKU       string          `json:"sku" yaml:"sku"`
	Quantity  int64           `json:"quantity" yaml:"quantity"`
	SalePrice decimal.Decimal `json:"sale_price" yaml:"sale_price"`
	// Discount is a percentage between 0 and 100.
	Discount decimal.Decimal `json:"discount" yaml:"discount"`
}

// PurchaseRecord is a receipt issued by a seller.
type PurchaseRecord struct {
	ReceiptID string     `json:"receipt_id" yaml:"receipt_id"`
	Date      Date       `json:"date" yaml:"date"`
	SellerID  string     `json:"seller_id" yaml:"seller_id"`
	Items     []LineItem `json:"items" yaml:"items"`
}

// Dataset bundles the inputs of an analysis.
type Dataset struct {
	Sellers         []Seller         `json:"sellers" yaml:"sellers"`
	Products        []Product        `json:"products" yaml:"products"`
	PurchaseRecords []PurchaseRecord `json:"purchase_records" yaml:"purchase_records"`
}

// ProductQuantity is the quantity sold of a product.
type ProductQuantity struct {
	SKU      string `json:"sku"`
	Quantity int64  `json:"quantity"`
}

// SellerResult is the performance of a single seller.
type SellerResult struct {
	SellerID    string            `json:"seller_id"`
	Name        string            `json:"name"`
	Revenue     decimal.Decimal   `json:"revenue"`
	Profit      decimal.Decimal   `json:"profit"`
	SalesCount  int               `json:"sales_count"`
	Bonus       decimal.Decimal   `json:"bonus"`
	TopProducts []ProductQuantity `json:"top_products"`
}

// Date is a calendar date in YYYY-MM-DD notation. The zero value
// represents an absent date.
type Date struct {
	t time.Time
}

// NewDate creates a date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Time returns the date as a time at midnight UTC.
func (d Date) Time() time.Time {
	return d.t
}

// Equal reports whether both dates are the same.
func (d Date) Equal(o Date) bool {
	return d.t.Equal(o.t)
}

// IsZero reports whether the date is absent.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// DateLayout is the textual representation of a date.
const DateLayout = "2006-01-02"

// ParseDate parses a date. The empty string yields the zero date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// Prefixes such as "2023-12-04T10:00:00" are accepted and truncated to the day.
func parseDatePrefix(s string) (Date, error) {
	if len(s) > len(DateLayout) && s[len(DateLayout)] == 'T' {
		s = s[:len(DateLayout)]
	}
	return ParseDate(s)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	res, err := parseDatePrefix(string(b))
	if err != nil {
		return err
	}
	*d = res
	return nil
}
