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

// Package cpr contains helpers for channel pipelines.
package cpr

import "context"

// Push sends the given values, unless the context is canceled first.
func Push[T any](ctx context.Context, ch chan<- T, ts ...T) error {
	for _, t := range ts {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ch <- t:
		}
	}
	return nil
}

// Pop receives a value. ok is false if the channel has been closed.
func Pop[T any](ctx context.Context, ch <-chan T) (T, bool, error) {
	select {
	case <-ctx.Done():
		var def T
		return def, false, ctx.Err()
	case t, ok := <-ch:
		return t, ok, nil
	}
}

// Consume calls f for every value received until the channel is closed.
func Consume[T any](ctx context.Context, ch <-chan T, f func(T) error) error {
	for {
		t, ok, err := Pop(ctx, ch)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := f(t); err != nil {
			return err
		}
	}
}
