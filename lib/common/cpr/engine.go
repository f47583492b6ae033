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

	"golang.org/x/sync/errgroup"
)

type Source[T any] interface {
	Source(context.Context, chan<- T) error
}

type Processor[T any] interface {
	Process(context.Context, <-chan T, chan<- T) error
}

type Sink[T any] interface {
	Sink(context.Context, <-chan T) error
}

// Engine runs a source, a sequence of processors and a sink, each in its
// own goroutine. The first error cancels all stages.
type Engine[T any] struct {
	Source     Source[T]
	Sink       Sink[T]
	Processors []Processor[T]
}

const bufSize = 100

func (eng *Engine[T]) Process(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	ch := make(chan T, bufSize)
	{
		outCh := ch
		g.Go(func() error {
			defer close(outCh)
			return eng.Source.Source(ctx, outCh)
		})
	}
	for _, pr := range eng.Processors {
		pr, inCh, outCh := pr, ch, make(chan T, bufSize)
		g.Go(func() error {
			defer close(outCh)
			return pr.Process(ctx, inCh, outCh)
		})
		ch = outCh
	}
	{
		inCh := ch
		g.Go(func() error {
			return eng.Sink.Sink(ctx, inCh)
		})
	}
	return g.Wait()
}

func (eng *Engine[T]) Add(p Processor[T]) {
	eng.Processors = append(eng.Processors, p)
}

// Map is a processor which applies a function to every value.
type Map[T any] func(context.Context, T) error

func (f Map[T]) Process(ctx context.Context, inCh <-chan T, outCh chan<- T) error {
	return Consume(ctx, inCh, func(t T) error {
		if err := f(ctx, t); err != nil {
			return err
		}
		return Push(ctx, outCh, t)
	})
}

// Each is a sink which applies a function to every value.
type Each[T any] func(context.Context, T) error

func (f Each[T]) Sink(ctx context.Context, inCh <-chan T) error {
	return Consume(ctx, inCh, func(t T) error {
		return f(ctx, t)
	})
}

type Collector[T any] struct {
	Result []T
}

func (c *Collector[T]) Sink(ctx context.Context, inCh <-chan T) error {
	return Consume(ctx, inCh, func(t T) error {
		c.Result = append(c.Result, t)
		return nil
	})
}

type Producer[T any] struct {
	Items []T
}

func (p *Producer[T]) Source(ctx context.Context, outCh chan<- T) error {
	return Push(ctx, outCh, p.Items...)
}
