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
	"github.com/shopspring/decimal"

	"github.com/sboehler/salesperf/lib/common/dict"
	"github.com/sboehler/salesperf/lib/model"
)

// accumulator holds the running totals of a seller during one analysis.
type accumulator struct {
	Stats

	sold     map[string]*model.ProductQuantity
	products []*model.ProductQuantity

	bonus decimal.Decimal
	top   []model.ProductQuantity
}

func newAccumulator(s model.Seller) *accumulator {
	return &accumulator{
		Stats: Stats{
			SellerID: s.ID,
			Name:     s.Name(),
		},
		sold: make(map[string]*model.ProductQuantity),
	}
}

// addQuantity books the quantity of a SKU. Products are remembered in
// the order in which they were first sold.
func (a *accumulator) addQuantity(sku string, qty int64) {
	pq := dict.GetDefault(a.sold, sku, func() *model.ProductQuantity {
		pq := &model.ProductQuantity{SKU: sku}
		a.products = append(a.products, pq)
		return pq
	})
	pq.Quantity += qty
}

func (a *accumulator) finalize() {
	a.Revenue = a.Revenue.Round(2)
	a.Profit = a.Profit.Round(2)
}

// sellerIndex maps seller IDs to accumulators, keeping the roster order.
type sellerIndex struct {
	pos  map[string]int
	accs []*accumulator
}

func (idx *sellerIndex) get(id string) (*accumulator, bool) {
	i, ok := idx.pos[id]
	if !ok {
		return nil, false
	}
	return idx.accs[i], true
}

// buildIndex creates a fresh accumulator for every seller and indexes the
// products by SKU. A repeated seller ID or SKU replaces the earlier entry;
// a replaced seller keeps the position of its first occurrence.
func buildIndex(sellers []model.Seller, products []model.Product) (*sellerIndex, map[string]model.Product) {
	idx := &sellerIndex{
		pos:  make(map[string]int, len(sellers)),
		accs: make([]*accumulator, 0, len(sellers)),
	}
	for _, s := range sellers {
		if i, ok := idx.pos[s.ID]; ok {
			idx.accs[i] = newAccumulator(s)
			continue
		}
		idx.pos[s.ID] = len(idx.accs)
		idx.accs = append(idx.accs, newAccumulator(s))
	}
	bySKU := make(map[string]model.Product, len(products))
	for _, p := range products {
		bySKU[p.SKU] = p
	}
	return idx, bySKU
}
