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

package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSellerName(t *testing.T) {
	s := Seller{ID: "s1", FirstName: "Ivan", LastName: "Ivanov"}
	if got, want := s.Name(), "Ivan Ivanov"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		input string
		want  Date
		err   bool
	}{
		{input: "2023-12-04", want: NewDate(2023, time.December, 4)},
		{input: "2023-12-04T09:30:00", want: NewDate(2023, time.December, 4)},
		{input: "", want: Date{}},
		{input: "04.12.2023", err: true},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			var got Date
			err := got.UnmarshalText([]byte(test.input))
			if test.err {
				if err == nil {
					t.Fatalf("UnmarshalText(%q) returned no error", test.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("UnmarshalText(%q) returned unexpected error: %v", test.input, err)
			}
			if !got.Equal(test.want) {
				t.Errorf("UnmarshalText(%q) = %v, want %v", test.input, got, test.want)
			}
		})
	}
}

func TestDateJSON(t *testing.T) {
	var rec PurchaseRecord
	if err := json.Unmarshal([]byte(`{"date": "2023-12-04"}`), &rec); err != nil {
		t.Fatalf("Unmarshal() returned unexpected error: %v", err)
	}
	b, err := json.Marshal(rec.Date)
	if err != nil {
		t.Fatalf("Marshal() returned unexpected error: %v", err)
	}
	if got, want := string(b), `"2023-12-04"`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}
