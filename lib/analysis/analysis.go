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

// Package analysis computes the sales performance of sellers: revenue,
// profit, number of sales, best-selling products and a bonus depending on
// the profit rank.
package analysis

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/sboehler/salesperf/lib/model"
)

var (
	// ErrInvalidInput is returned if a required collection is missing or empty.
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingConfiguration is returned if neither strategy is supplied.
	ErrMissingConfiguration = errors.New("missing configuration")
)

// Config configures an analysis. At least one of Revenue and Bonus must
// be set; the other one defaults to SimpleRevenue or BonusByProfit.
type Config struct {
	Revenue RevenueFunc
	Bonus   BonusFunc

	// OnOmit, if set, is called for every record or item which is skipped
	// because it references an unknown seller or product.
	OnOmit func(Omission)
}

// Analyze computes the results of all sellers in the dataset, ordered by
// profit, highest first. Every call works on its own accumulators, so
// concurrent calls are safe as long as the dataset is not modified.
func Analyze(ds *model.Dataset, cfg Config) ([]model.SellerResult, error) {
	if err := validate(ds); err != nil {
		return nil, err
	}
	if cfg.Revenue == nil && cfg.Bonus == nil {
		return nil, fmt.Errorf("%w: neither a revenue nor a bonus strategy was supplied", ErrMissingConfiguration)
	}
	var (
		revenue = cfg.Revenue
		bonus   = cfg.Bonus
		omit    = cfg.OnOmit
	)
	if revenue == nil {
		revenue = SimpleRevenue
	}
	if bonus == nil {
		bonus = BonusByProfit
	}
	if omit == nil {
		omit = func(Omission) {}
	}

	sellers, products := buildIndex(ds.Sellers, ds.Products)
	aggregate(ds.PurchaseRecords, sellers, products, revenue, omit)
	ranked := rank(sellers.accs, bonus)
	for _, acc := range ranked {
		acc.top = topProducts(acc, TopProducts)
	}
	return assemble(ranked), nil
}

func validate(ds *model.Dataset) error {
	if ds == nil {
		return fmt.Errorf("%w: no dataset", ErrInvalidInput)
	}
	var err error
	if len(ds.Sellers) == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: no sellers", ErrInvalidInput))
	}
	if len(ds.Products) == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: no products", ErrInvalidInput))
	}
	if len(ds.PurchaseRecords) == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: no purchase records", ErrInvalidInput))
	}
	return err
}
