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
	"github.com/sboehler/salesperf/lib/common/compare"
	"github.com/sboehler/salesperf/lib/model"
)

// TopProducts is the maximum number of products reported per seller.
const TopProducts = 10

var byQuantityDesc = compare.Desc(compare.By(func(pq model.ProductQuantity) int64 {
	return pq.Quantity
}, compare.Ordered[int64]))

// topProducts returns the n best-selling products of the seller. Products
// with equal quantities keep the order in which they were first sold.
func topProducts(acc *accumulator, n int) []model.ProductQuantity {
	res := make([]model.ProductQuantity, 0, len(acc.products))
	for _, pq := range acc.products {
		res = append(res, *pq)
	}
	compare.SortStable(res, byQuantityDesc)
	if len(res) > n {
		res = res[:n]
	}
	return res
}
