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

package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/sboehler/salesperf/lib/model"
)

// The files of a CSV dataset directory.
const (
	SellersFile         = "sellers.csv"
	ProductsFile        = "products.csv"
	PurchaseRecordsFile = "purchase_records.csv"
)

func fromDir(ctx context.Context, dir string, opts Options) (*model.Dataset, error) {
	var ds model.Dataset
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readFile(ctx, filepath.Join(dir, SellersFile), opts, func(r *csv.Reader) (err error) {
			ds.Sellers, err = readSellers(ctx, r)
			return err
		})
	})
	g.Go(func() error {
		return readFile(ctx, filepath.Join(dir, ProductsFile), opts, func(r *csv.Reader) (err error) {
			ds.Products, err = readProducts(ctx, r)
			return err
		})
	})
	g.Go(func() error {
		return readFile(ctx, filepath.Join(dir, PurchaseRecordsFile), opts, func(r *csv.Reader) (err error) {
			ds.PurchaseRecords, err = readPurchaseRecords(ctx, r)
			return err
		})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func readFile(ctx context.Context, path string, opts Options, f func(*csv.Reader) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	r, err := opts.decode(bufio.NewReader(file))
	if err != nil {
		return err
	}
	if err := f(newReader(r)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true
	return reader
}

// ReadCSV reads a dataset from the three CSV streams.
func ReadCSV(ctx context.Context, sellers, products, records io.Reader) (*model.Dataset, error) {
	var (
		ds  model.Dataset
		err error
	)
	if ds.Sellers, err = readSellers(ctx, newReader(sellers)); err != nil {
		return nil, fmt.Errorf("sellers: %w", err)
	}
	if ds.Products, err = readProducts(ctx, newReader(products)); err != nil {
		return nil, fmt.Errorf("products: %w", err)
	}
	if ds.PurchaseRecords, err = readPurchaseRecords(ctx, newReader(records)); err != nil {
		return nil, fmt.Errorf("purchase records: %w", err)
	}
	return &ds, nil
}

// header maps column names to their positions.
type header map[string]int

func readHeader(r *csv.Reader, required ...string) (header, error) {
	rec, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("missing header")
		}
		return nil, err
	}
	h := make(header, len(rec))
	for i, name := range rec {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := h[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	return h, nil
}

func (h header) get(rec []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// forEachRow calls f for every row after the header. Lines are counted
// from 1, including the header.
func forEachRow(ctx context.Context, r *csv.Reader, f func(rec []string) error) error {
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := f(rec); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
}

func readSellers(ctx context.Context, r *csv.Reader) ([]model.Seller, error) {
	h, err := readHeader(r, "id", "first_name", "last_name")
	if err != nil {
		return nil, err
	}
	var res []model.Seller
	err = forEachRow(ctx, r, func(rec []string) error {
		res = append(res, model.Seller{
			ID:        h.get(rec, "id"),
			FirstName: h.get(rec, "first_name"),
			LastName:  h.get(rec, "last_name"),
		})
		return nil
	})
	return res, err
}

func readProducts(ctx context.Context, r *csv.Reader) ([]model.Product, error) {
	h, err := readHeader(r, "sku", "purchase_price")
	if err != nil {
		return nil, err
	}
	var res []model.Product
	err = forEachRow(ctx, r, func(rec []string) error {
		price, err := decimal.NewFromString(h.get(rec, "purchase_price"))
		if err != nil {
			return err
		}
		res = append(res, model.Product{
			SKU:           h.get(rec, "sku"),
			PurchasePrice: price,
		})
		return nil
	})
	return res, err
}

// readPurchaseRecords reads one line item per row. Consecutive rows with
// the same non-empty receipt ID form one purchase record.
func readPurchaseRecords(ctx context.Context, r *csv.Reader) ([]model.PurchaseRecord, error) {
	h, err := readHeader(r, "receipt_id", "seller_id", "sku", "quantity", "sale_price", "discount")
	if err != nil {
		return nil, err
	}
	var res []model.PurchaseRecord
	err = forEachRow(ctx, r, func(rec []string) error {
		var (
			receipt = h.get(rec, "receipt_id")
			seller  = h.get(rec, "seller_id")
		)
		item, err := parseLineItem(h, rec)
		if err != nil {
			return err
		}
		if n := len(res); n > 0 && receipt != "" && res[n-1].ReceiptID == receipt {
			if res[n-1].SellerID != seller {
				return fmt.Errorf("receipt %s: seller changes from %q to %q", receipt, res[n-1].SellerID, seller)
			}
			res[n-1].Items = append(res[n-1].Items, item)
			return nil
		}
		date, err := model.ParseDate(h.get(rec, "date"))
		if err != nil {
			return err
		}
		res = append(res, model.PurchaseRecord{
			ReceiptID: receipt,
			Date:      date,
			SellerID:  seller,
			Items:     []model.LineItem{item},
		})
		return nil
	})
	return res, err
}

func parseLineItem(h header, rec []string) (model.LineItem, error) {
	var (
		item = model.LineItem{SKU: h.get(rec, "sku")}
		err  error
	)
	if item.Quantity, err = strconv.ParseInt(h.get(rec, "quantity"), 10, 64); err != nil {
		return item, fmt.Errorf("invalid quantity: %w", err)
	}
	if item.SalePrice, err = decimal.NewFromString(h.get(rec, "sale_price")); err != nil {
		return item, fmt.Errorf("invalid sale price: %w", err)
	}
	if s := h.get(rec, "discount"); s != "" {
		if item.Discount, err = decimal.NewFromString(s); err != nil {
			return item, fmt.Errorf("invalid discount: %w", err)
		}
	}
	return item, nil
}
