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

import "github.com/sboehler/salesperf/lib/model"

func assemble(accs []*accumulator) []model.SellerResult {
	res := make([]model.SellerResult, 0, len(accs))
	for _, acc := range accs {
		res = append(res, model.SellerResult{
			SellerID:    acc.SellerID,
			Name:        acc.Name,
			Revenue:     acc.Revenue,
			Profit:      acc.Profit,
			SalesCount:  acc.SalesCount,
			Bonus:       acc.bonus,
			TopProducts: acc.top,
		})
	}
	return res
}
