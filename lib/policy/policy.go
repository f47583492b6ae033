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

// Package policy reads analysis policies from YAML files.
package policy

import (
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"

	"github.com/sboehler/salesperf/lib/analysis"
)

// Policy selects the strategies of an analysis.
//
//	revenue: simple
//	bonus:
//	  ranks: [0.15, 0.10, 0.10]
//	  bottom: 0
//	  others: 0.05
type Policy struct {
	Revenue string `yaml:"revenue"`
	Bonus   *Bonus `yaml:"bonus"`
}

// Bonus either names a bonus strategy or defines a tiered bonus.
type Bonus struct {
	Strategy string            `yaml:"strategy"`
	Ranks    []decimal.Decimal `yaml:"ranks"`
	Bottom   decimal.Decimal   `yaml:"bottom"`
	Others   decimal.Decimal   `yaml:"others"`
}

func (b Bonus) hasTiers() bool {
	return len(b.Ranks) > 0 || !b.Bottom.IsZero() || !b.Others.IsZero()
}

// Read decodes a policy. Unknown keys are rejected.
func Read(r io.Reader) (*Policy, error) {
	dec := yaml.NewDecoder(r)
	dec.SetStrict(true)
	var p Policy
	if err := dec.Decode(&p); err != nil {
		if err == io.EOF {
			return &p, nil
		}
		return nil, err
	}
	return &p, nil
}

// FromFile reads the policy at the given path.
func FromFile(path string) (*Policy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	p, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

var one = decimal.NewFromInt(1)

// Config creates the analysis configuration. Strategies which the policy
// leaves open are left unset.
func (p Policy) Config() (analysis.Config, error) {
	var (
		cfg analysis.Config
		err error
	)
	if p.Revenue != "" {
		if cfg.Revenue, err = analysis.LookupRevenue(p.Revenue); err != nil {
			return cfg, err
		}
	}
	if p.Bonus == nil {
		return cfg, nil
	}
	if p.Bonus.Strategy != "" {
		if p.Bonus.hasTiers() {
			return cfg, fmt.Errorf("bonus: strategy %q cannot be combined with rates", p.Bonus.Strategy)
		}
		cfg.Bonus, err = analysis.LookupBonus(p.Bonus.Strategy)
		return cfg, err
	}
	rates := append([]decimal.Decimal{p.Bonus.Bottom, p.Bonus.Others}, p.Bonus.Ranks...)
	for _, r := range rates {
		if r.IsNegative() || r.GreaterThan(one) {
			return cfg, fmt.Errorf("bonus: rate %s is not between 0 and 1", r)
		}
	}
	tb := analysis.TieredBonus{
		Ranks:  p.Bonus.Ranks,
		Bottom: p.Bonus.Bottom,
		Others: p.Bonus.Others,
	}
	cfg.Bonus = tb.Bonus
	return cfg, nil
}
