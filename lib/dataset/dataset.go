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

// Package dataset loads sales datasets from files.
package dataset

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"gopkg.in/yaml.v2"

	"github.com/sboehler/salesperf/lib/model"
)

// Options control how datasets are read.
type Options struct {
	// Encoding is the character encoding of the input, "utf-8" (default)
	// or "latin1".
	Encoding string
}

func (o Options) decode(r io.Reader) (io.Reader, error) {
	switch strings.ToLower(o.Encoding) {
	case "", "utf-8", "utf8":
		return r, nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder().Reader(r), nil
	}
	return nil, fmt.Errorf("unsupported encoding %q", o.Encoding)
}

// FromPath loads the dataset at path, which is either a JSON or YAML
// file or a directory holding the CSV files sellers.csv, products.csv
// and purchase_records.csv.
func FromPath(ctx context.Context, path string, opts Options) (*model.Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return fromDir(ctx, path, opts)
	}
	var read func(io.Reader) (*model.Dataset, error)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		read = ReadJSON
	case ".yaml", ".yml":
		read = ReadYAML
	default:
		return nil, fmt.Errorf("%s: unsupported file type %q", path, ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := opts.decode(bufio.NewReader(f))
	if err != nil {
		return nil, err
	}
	ds, err := read(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// ReadJSON decodes a dataset in JSON format. Unknown fields are ignored.
func ReadJSON(r io.Reader) (*model.Dataset, error) {
	var ds model.Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// ReadYAML decodes a dataset in YAML format. Unknown fields are ignored.
func ReadYAML(r io.Reader) (*model.Dataset, error) {
	var ds model.Dataset
	if err := yaml.NewDecoder(r).Decode(&ds); err != nil && err != io.EOF {
		return nil, err
	}
	return &ds, nil
}

// Filter returns a dataset with the purchase records dated between from
// and to, inclusively. A zero bound is open. Undated records are kept
// only if both bounds are open.
func Filter(ds *model.Dataset, from, to model.Date) *model.Dataset {
	if from.IsZero() && to.IsZero() {
		return ds
	}
	res := &model.Dataset{
		Sellers:         ds.Sellers,
		Products:        ds.Products,
		PurchaseRecords: make([]model.PurchaseRecord, 0, len(ds.PurchaseRecords)),
	}
	for _, rec := range ds.PurchaseRecords {
		if rec.Date.IsZero() {
			continue
		}
		if !from.IsZero() && rec.Date.Time().Before(from.Time()) {
			continue
		}
		if !to.IsZero() && rec.Date.Time().After(to.Time()) {
			continue
		}
		res.PurchaseRecords = append(res.PurchaseRecords, rec)
	}
	return res
}
