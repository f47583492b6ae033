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
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/sboehler/salesperf/cmd/flags"
	"github.com/sboehler/salesperf/lib/common/cpr"
	"github.com/sboehler/salesperf/lib/model"
	"github.com/sboehler/salesperf/lib/reports/sellers"
)

// CreateBatchCommand creates the command.
func CreateBatchCommand() *cobra.Command {
	var r batchRunner

	c := &cobra.Command{
		Use:   "batch <dataset>...",
		Short: "analyze several datasets",
		Long: `Analyze every dataset with the same strategies and write one report per
dataset into the output directory. A dataset which fails does not stop the
others; all errors are reported at the end.`,

		Args: cobra.MinimumNArgs(1),

		RunE:          r.run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	r.setupFlags(c)
	return c
}

type batchRunner struct {
	strategies strategyFlags
	input      inputFlags
	format     flags.FormatFlag
	outDir     string
	progress   bool
}

func (r *batchRunner) setupFlags(c *cobra.Command) {
	r.strategies.setup(c)
	r.input.setup(c)
	c.Flags().VarP(&r.format, "format", "f", "output format")
	c.Flags().StringVar(&r.outDir, "out-dir", ".", "directory to write the reports to")
	c.Flags().BoolVar(&r.progress, "progress", true, "show a progress bar")
}

// batchJob is one dataset flowing through the pipeline. A job which
// failed carries its error to the sink and is skipped by later stages.
type batchJob struct {
	path    string
	output  string
	dataset *model.Dataset
	results []model.SellerResult
	err     error
}

func (r *batchRunner) run(cmd *cobra.Command, args []string) error {
	cfg, err := r.strategies.config(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	jobs, err := r.jobs(args)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(r.outDir, 0755); err != nil {
		return err
	}
	var bar *pb.ProgressBar
	if r.progress {
		bar = pb.New(len(jobs)).SetWriter(cmd.ErrOrStderr()).Start()
		defer bar.Finish()
	}
	var errs []error
	eng := cpr.Engine[*batchJob]{
		Source: &cpr.Producer[*batchJob]{Items: jobs},
		Sink: cpr.Each[*batchJob](func(ctx context.Context, job *batchJob) error {
			if bar != nil {
				defer bar.Increment()
			}
			if job.err == nil {
				job.err = r.write(job)
			}
			if job.err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", job.path, job.err))
			}
			return nil
		}),
	}
	eng.Add(cpr.Map[*batchJob](func(ctx context.Context, job *batchJob) error {
		job.dataset, job.err = r.input.load(cmd, job.path)
		return nil
	}))
	eng.Add(cpr.Map[*batchJob](func(ctx context.Context, job *batchJob) error {
		if job.err == nil {
			job.results, job.err = analyze(job.dataset, cfg)
		}
		return nil
	}))
	if err := eng.Process(cmd.Context()); err != nil {
		return err
	}
	return multierr.Combine(errs...)
}

func (r *batchRunner) jobs(paths []string) ([]*batchJob, error) {
	var (
		res  = make([]*batchJob, 0, len(paths))
		seen = make(map[string]string)
	)
	for _, path := range paths {
		out := filepath.Join(r.outDir, outputName(path, r.format.Value()))
		if other, ok := seen[out]; ok {
			return nil, fmt.Errorf("%s and %s would both be written to %s", other, path, out)
		}
		seen[out] = path
		res = append(res, &batchJob{path: path, output: out})
	}
	return res, nil
}

func (r *batchRunner) write(job *batchJob) error {
	var (
		buf bytes.Buffer
		rep = &sellers.Report{Results: job.results}
		rnd = sellers.Renderer{Format: r.format.Value()}
	)
	if err := rnd.Render(rep, &buf); err != nil {
		return err
	}
	return atomic.WriteFile(job.output, &buf)
}

// outputName derives the report file name from the dataset path.
func outputName(path string, f sellers.Format) string {
	base := filepath.Base(filepath.Clean(path))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	ext := string(f)
	if f == sellers.Text {
		ext = "txt"
	}
	return base + "." + ext
}
