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

package commands

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"

	"github.com/sboehler/salesperf/cmd/cmdtest"
	"github.com/sboehler/salesperf/lib/analysis"
	"github.com/sboehler/salesperf/lib/reports/sellers"
)

func TestBatch(t *testing.T) {
	dir := t.TempDir()

	cmdtest.Run(t, CreateBatchCommand(), []string{
		"--bonus", "profit", "--format", "json", "--out-dir", dir, "--progress=false",
		"testdata/sole_seller.json", "testdata/sales.json",
	})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("os.ReadDir() returned unexpected error: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	if diff := cmp.Diff([]string{"sales.json", "sole_seller.json"}, names); diff != "" {
		t.Fatalf("unexpected diff (-want, +got):\n%s", diff)
	}
	got, err := os.ReadFile(filepath.Join(dir, "sole_seller.json"))
	if err != nil {
		t.Fatalf("os.ReadFile() returned unexpected error: %v", err)
	}
	goldie.New(t).Assert(t, "sole_seller_json", got)
}

func TestBatchContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()

	_, err := cmdtest.Execute(CreateBatchCommand(), []string{
		"--bonus", "profit", "--format", "csv", "--out-dir", dir,
		"testdata/no_records.json", "testdata/sales.json", "testdata/missing.json",
	})

	if err == nil {
		t.Fatal("Execute() returned no error")
	}
	if !errors.Is(err, analysis.ErrInvalidInput) {
		t.Errorf("Execute() returned error %v, want %v", err, analysis.ErrInvalidInput)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Execute() returned error %v, want %v", err, os.ErrNotExist)
	}
	got, err := os.ReadFile(filepath.Join(dir, "sales.csv"))
	if err != nil {
		t.Fatalf("os.ReadFile() returned unexpected error: %v", err)
	}
	goldie.New(t).Assert(t, "sales_csv", got)
	if _, err := os.Stat(filepath.Join(dir, "no_records.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected no report for a failed dataset, got %v", err)
	}
}

func TestBatchDuplicateOutputs(t *testing.T) {
	_, err := cmdtest.Execute(CreateBatchCommand(), []string{
		"--bonus", "profit", "--out-dir", t.TempDir(),
		"testdata/sales.json", "testdata/sales.yaml",
	})

	if err == nil {
		t.Fatal("Execute() returned no error")
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		path   string
		format sellers.Format
		want   string
	}{
		{"testdata/sales.json", sellers.Text, "sales.txt"},
		{"testdata/sales.json", sellers.CSV, "sales.csv"},
		{"data/2023/", sellers.JSON, "2023.json"},
		{"shop.yaml", sellers.JSON, "shop.json"},
	}
	for _, test := range tests {
		if got := outputName(test.path, test.format); got != test.want {
			t.Errorf("outputName(%q, %s) = %q, want %q", test.path, test.format, got, test.want)
		}
	}
}
