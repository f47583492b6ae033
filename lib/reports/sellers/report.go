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

// Package sellers renders seller performance reports.
package sellers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sboehler/salesperf/lib/common/table"
	"github.com/sboehler/salesperf/lib/model"
)

// Format is an output format.
type Format string

// The supported formats.
const (
	Text Format = "text"
	CSV  Format = "csv"
	JSON Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{Text, CSV, JSON}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (valid: text, csv, json)", s)
}

// Report is a ranked list of seller results.
type Report struct {
	Results []model.SellerResult

	// TopProducts limits the number of products shown per seller in
	// tables. Zero shows all of them.
	TopProducts int
}

// Table creates a table with one row per seller, in rank order.
func (rep *Report) Table() *table.Table {
	tbl := table.New(1, 1, 1, 1, 3, 1)
	tbl.AddRow().
		AddText("Rank", table.Right).
		AddText("Seller", table.Left).
		AddText("Name", table.Left).
		AddText("Sales", table.Right).
		AddText("Revenue", table.Right).
		AddText("Profit", table.Right).
		AddText("Bonus", table.Right).
		AddText("Top products", table.Left)
	tbl.AddSeparatorRow()
	for i, res := range rep.Results {
		tbl.AddRow().
			AddText(strconv.Itoa(i+1), table.Right).
			AddText(res.SellerID, table.Left).
			AddText(res.Name, table.Left).
			AddText(strconv.Itoa(res.SalesCount), table.Right).
			AddNumber(res.Revenue).
			AddNumber(res.Profit).
			AddNumber(res.Bonus).
			AddText(rep.topProducts(res.TopProducts), table.Left)
	}
	return tbl
}

func (rep *Report) topProducts(pqs []model.ProductQuantity) string {
	if rep.TopProducts > 0 && len(pqs) > rep.TopProducts {
		pqs = pqs[:rep.TopProducts]
	}
	ss := make([]string, 0, len(pqs))
	for _, pq := range pqs {
		ss = append(ss, fmt.Sprintf("%s×%d", pq.SKU, pq.Quantity))
	}
	return strings.Join(ss, " ")
}

// Renderer writes a report.
type Renderer struct {
	Format Format
	Color  bool
}

// Render writes the report in the configured format.
func (r Renderer) Render(rep *Report, w io.Writer) error {
	switch r.Format {
	case Text, "":
		tr := table.TextRenderer{Color: r.Color, Round: 2}
		return tr.Render(rep.Table(), w)
	case CSV:
		cr := table.CSVRenderer{Round: 2}
		return cr.Render(rep.Table(), w)
	case JSON:
		return writeJSON(rep, w)
	}
	return fmt.Errorf("unknown format %q", r.Format)
}

type jsonResult struct {
	SellerID    string                  `json:"seller_id"`
	Name        string                  `json:"name"`
	Revenue     json.Number             `json:"revenue"`
	Profit      json.Number             `json:"profit"`
	SalesCount  int                     `json:"sales_count"`
	Bonus       json.Number             `json:"bonus"`
	TopProducts []model.ProductQuantity `json:"top_products"`
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

// writeJSON writes all results, including all top products, with
// amounts as numbers with two decimal places.
func writeJSON(rep *Report, w io.Writer) error {
	res := make([]jsonResult, 0, len(rep.Results))
	for _, r := range rep.Results {
		top := r.TopProducts
		if top == nil {
			top = []model.ProductQuantity{}
		}
		res = append(res, jsonResult{
			SellerID:    r.SellerID,
			Name:        r.Name,
			Revenue:     money(r.Revenue),
			Profit:      money(r.Profit),
			SalesCount:  r.SalesCount,
			Bonus:       money(r.Bonus),
			TopProducts: top,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
