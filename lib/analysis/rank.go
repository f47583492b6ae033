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

	"github.com/sboehler/salesperf/lib/common/compare"
)

var byProfitDesc = compare.Desc(compare.By(func(a *accumulator) decimal.Decimal {
	return a.Profit
}, compare.Decimal))

// rank orders the accumulators by profit, highest first, and computes
// the bonus of every seller from its rank. Sellers with equal profit
// keep their roster order.
func rank(accs []*accumulator, bonus BonusFunc) []*accumulator {
	ranked := make([]*accumulator, len(accs))
	copy(ranked, accs)
	compare.SortStable(ranked, byProfitDesc)
	for i, acc := range ranked {
		acc.bonus = bonus(i, len(ranked), acc.Stats)
	}
	return ranked
}
