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

package cpr

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type job struct {
	n, square int
	label     string
}

func TestEngine(t *testing.T) {
	var (
		ctx   = context.Background()
		sink  = new(Collector[*job])
		input = []*job{{n: 1}, {n: 2}, {n: 3}}
		eng   = Engine[*job]{
			Source: &Producer[*job]{input},
			Sink:   sink,
		}
		want = []*job{{1, 1, "odd"}, {2, 4, "even"}, {3, 9, "odd"}}
	)
	eng.Add(Map[*job](func(_ context.Context, j *job) error {
		j.square = j.n * j.n
		return nil
	}))
	eng.Add(Map[*job](func(_ context.Context, j *job) error {
		j.label = "odd"
		if j.n%2 == 0 {
			j.label = "even"
		}
		return nil
	}))

	if err := eng.Process(ctx); err != nil {
		t.Fatalf("Process() returned unexpected error: %v", err)
	}

	if diff := cmp.Diff(want, sink.Result, cmp.AllowUnexported(job{})); diff != "" {
		t.Fatalf("unexpected diff (-want/+got):\n%s", diff)
	}
}

func TestEngineError(t *testing.T) {
	var (
		ctx     = context.Background()
		errStop = errors.New("stop")
		eng     = Engine[int]{
			Source: &Producer[int]{[]int{1, 2, 3}},
			Sink: Each[int](func(_ context.Context, i int) error {
				if i == 2 {
					return errStop
				}
				return nil
			}),
		}
	)

	if err := eng.Process(ctx); !errors.Is(err, errStop) {
		t.Fatalf("Process() returned %v, want %v", err, errStop)
	}
}
