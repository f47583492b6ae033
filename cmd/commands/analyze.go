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
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/sboehler/salesperf/cmd/flags"
	"github.com/sboehler/salesperf/lib/analysis"
	"github.com/sboehler/salesperf/lib/dataset"
	"github.com/sboehler/salesperf/lib/model"
	"github.com/sboehler/salesperf/lib/policy"
	"github.com/sboehler/salesperf/lib/reports/sellers"
)

// CreateAnalyzeCommand creates the command.
func CreateAnalyzeCommand() *cobra.Command {
	var r analyzeRunner

	c := &cobra.Command{
		Use:   "analyze <dataset>",
		Short: "rank sellers by profit",
		Long: `Compute revenue, profit, sales count, bonus and top products of every seller
in the dataset, ranked by profit. The dataset is a JSON or YAML file, or a
directory containing sellers.csv, products.csv and purchase_records.csv.`,

		Args: cobra.ExactArgs(1),

		RunE:          r.run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	r.setupFlags(c)
	return c
}

type analyzeRunner struct {
	strategies strategyFlags
	input      inputFlags
	format     flags.FormatFlag
	output     string
	color      bool
	top        int
}

func (r *analyzeRunner) setupFlags(c *cobra.Command) {
	r.strategies.setup(c)
	r.input.setup(c)
	c.Flags().VarP(&r.format, "format", "f", "output format")
	c.Flags().StringVarP(&r.output, "output", "o", "", "write the report to a file instead of stdout")
	c.Flags().BoolVar(&r.color, "color", true, "print output in color")
	c.Flags().IntVar(&r.top, "top", 0, "number of top products shown per seller in tables (0 shows all)")
}

func (r *analyzeRunner) run(cmd *cobra.Command, args []string) error {
	cfg, err := r.strategies.config(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	ds, err := r.input.load(cmd, args[0])
	if err != nil {
		return err
	}
	res, err := analyze(ds, cfg)
	if err != nil {
		return err
	}
	var (
		rep = &sellers.Report{Results: res, TopProducts: r.top}
		rnd = sellers.Renderer{Format: r.format.Value(), Color: r.color}
	)
	if r.output != "" {
		var buf bytes.Buffer
		if err := rnd.Render(rep, &buf); err != nil {
			return err
		}
		return atomic.WriteFile(r.output, &buf)
	}
	out := bufio.NewWriter(cmd.OutOrStdout())
	if err := rnd.Render(rep, out); err != nil {
		return err
	}
	return out.Flush()
}

func analyze(ds *model.Dataset, cfg analysis.Config) ([]model.SellerResult, error) {
	res, err := analysis.Analyze(ds, cfg)
	if errors.Is(err, analysis.ErrMissingConfiguration) {
		return nil, fmt.Errorf("%w (use --revenue, --bonus or --policy)", err)
	}
	return res, err
}

// strategyFlags select the revenue and bonus strategies. Named
// strategies override the ones defined in the policy file.
type strategyFlags struct {
	revenue string
	bonus   string
	policy  string
	verbose bool
}

func (sf *strategyFlags) setup(c *cobra.Command) {
	c.Flags().StringVar(&sf.revenue, "revenue", "", "revenue strategy (gross, simple)")
	c.Flags().StringVar(&sf.bonus, "bonus", "", "bonus strategy (profit)")
	c.Flags().StringVarP(&sf.policy, "policy", "p", "", "YAML file defining the revenue and bonus strategies")
	c.Flags().BoolVarP(&sf.verbose, "verbose", "v", false, "report skipped records and items")
}

func (sf *strategyFlags) config(stderr io.Writer) (analysis.Config, error) {
	var (
		cfg analysis.Config
		err error
	)
	if sf.policy != "" {
		p, err := policy.FromFile(sf.policy)
		if err != nil {
			return cfg, err
		}
		if cfg, err = p.Config(); err != nil {
			return cfg, fmt.Errorf("%s: %w", sf.policy, err)
		}
	}
	if sf.revenue != "" {
		if cfg.Revenue, err = analysis.LookupRevenue(sf.revenue); err != nil {
			return cfg, err
		}
	}
	if sf.bonus != "" {
		if cfg.Bonus, err = analysis.LookupBonus(sf.bonus); err != nil {
			return cfg, err
		}
	}
	if sf.verbose {
		logger := log.New(stderr, "", 0)
		cfg.OnOmit = func(o analysis.Omission) {
			logger.Println(o)
		}
	}
	return cfg, nil
}

// inputFlags control how datasets are loaded.
type inputFlags struct {
	from, to flags.DateFlag
	encoding flags.EncodingFlag
}

func (in *inputFlags) setup(c *cobra.Command) {
	c.Flags().Var(&in.from, "from", "ignore purchase records before this date")
	c.Flags().Var(&in.to, "to", "ignore purchase records after this date")
	c.Flags().Var(&in.encoding, "encoding", "character encoding of the dataset")
}

func (in *inputFlags) load(cmd *cobra.Command, path string) (*model.Dataset, error) {
	ds, err := dataset.FromPath(cmd.Context(), path, dataset.Options{Encoding: in.encoding.Value()})
	if err != nil {
		return nil, err
	}
	return dataset.Filter(ds, in.from.Value(), in.to.Value()), nil
}
