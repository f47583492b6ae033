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
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sboehler/salesperf/lib/common/compare"
	"github.com/sboehler/salesperf/lib/common/dict"
	"github.com/sboehler/salesperf/lib/model"
)

// RevenueFunc computes the revenue of a line item. The result may be
// unrounded; the engine rounds the accumulated totals itself.
type RevenueFunc func(item model.LineItem, product model.Product) decimal.Decimal

// BonusFunc computes the bonus of the seller at the given zero-based
// rank among total sellers, ranked by profit.
type BonusFunc func(rank, total int, seller Stats) decimal.Decimal

// Stats are the finalized totals of a seller, as seen by a BonusFunc.
type Stats struct {
	SellerID   string
	Name       string
	Revenue    decimal.Decimal
	Profit     decimal.Decimal
	SalesCount int
}

var hundred = decimal.NewFromInt(100)

// SimpleRevenue computes sale price × quantity, reduced by the
// percentage discount and rounded to cents.
func SimpleRevenue(item model.LineItem, _ model.Product) decimal.Decimal {
	gross := item.SalePrice.Mul(decimal.NewFromInt(item.Quantity))
	return gross.Mul(hundred.Sub(item.Discount)).Div(hundred).Round(2)
}

// GrossRevenue computes sale price × quantity, ignoring discounts.
func GrossRevenue(item model.LineItem, _ model.Product) decimal.Decimal {
	return item.SalePrice.Mul(decimal.NewFromInt(item.Quantity)).Round(2)
}

// TieredBonus pays a percentage of profit depending on the rank. Ranks
// covered by Ranks take precedence over the Bottom rule, so a sole seller
// is paid as the top performer.
type TieredBonus struct {
	// Ranks holds the rates of the best ranks, starting at rank 0.
	Ranks []decimal.Decimal
	// Bottom is the rate of the last-ranked seller.
	Bottom decimal.Decimal
	// Others is the rate of everyone else.
	Others decimal.Decimal
}

// DefaultBonus is the standard bonus policy: 15% for the top seller, 10%
// for the next two, nothing for the last one and 5% otherwise.
var DefaultBonus = TieredBonus{
	Ranks: []decimal.Decimal{
		decimal.RequireFromString("0.15"),
		decimal.RequireFromString("0.10"),
		decimal.RequireFromString("0.10"),
	},
	Bottom: decimal.Zero,
	Others: decimal.RequireFromString("0.05"),
}

// Rate returns the bonus rate for the given rank.
func (tb TieredBonus) Rate(rank, total int) decimal.Decimal {
	switch {
	case rank < len(tb.Ranks):
		return tb.Ranks[rank]
	case rank == total-1:
		return tb.Bottom
	default:
		return tb.Others
	}
}

// Bonus implements BonusFunc.
func (tb TieredBonus) Bonus(rank, total int, seller Stats) decimal.Decimal {
	return seller.Profit.Mul(tb.Rate(rank, total)).Round(2)
}

// BonusByProfit applies DefaultBonus.
func BonusByProfit(rank, total int, seller Stats) decimal.Decimal {
	return DefaultBonus.Bonus(rank, total, seller)
}

// RevenueStrategies are the revenue strategies known by name.
var RevenueStrategies = map[string]RevenueFunc{
	"simple": SimpleRevenue,
	"gross":  GrossRevenue,
}

// BonusStrategies are the bonus strategies known by name.
var BonusStrategies = map[string]BonusFunc{
	"profit": BonusByProfit,
}

// LookupRevenue returns the revenue strategy with the given name.
func LookupRevenue(name string) (RevenueFunc, error) {
	if f, ok := RevenueStrategies[name]; ok {
		return f, nil
	}
	return nil, unknownStrategy("revenue", name, RevenueStrategies)
}

// LookupBonus returns the bonus strategy with the given name.
func LookupBonus(name string) (BonusFunc, error) {
	if f, ok := BonusStrategies[name]; ok {
		return f, nil
	}
	return nil, unknownStrategy("bonus", name, BonusStrategies)
}

func unknownStrategy[F any](kind, name string, known map[string]F) error {
	names := dict.SortedKeys(known, compare.Ordered[string])
	return fmt.Errorf("unknown %s strategy %q (valid: %s)", kind, name, strings.Join(names, ", "))
}
