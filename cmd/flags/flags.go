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

package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/sboehler/salesperf/lib/model"
	"github.com/sboehler/salesperf/lib/reports/sellers"
)

// DateFlag manages a flag to determine a date.
type DateFlag model.Date

var _ pflag.Value = (*DateFlag)(nil)

func (tf DateFlag) String() string {
	return tf.Value().String()
}

// Set implements pflag.Value.
func (tf *DateFlag) Set(v string) error {
	d, err := model.ParseDate(v)
	if err != nil {
		return err
	}
	*tf = DateFlag(d)
	return nil
}

// Type implements pflag.Value.
func (tf DateFlag) Type() string {
	return "YYYY-MM-DD"
}

// Value returns the flag value.
func (tf DateFlag) Value() model.Date {
	return model.Date(tf)
}

// FormatFlag manages a flag to select the output format.
type FormatFlag struct {
	val sellers.Format
}

var _ pflag.Value = (*FormatFlag)(nil)

func (ff FormatFlag) String() string {
	return string(ff.Value())
}

// Set implements pflag.Value.
func (ff *FormatFlag) Set(v string) error {
	f, err := sellers.ParseFormat(v)
	if err != nil {
		return err
	}
	ff.val = f
	return nil
}

// Type implements pflag.Value.
func (ff FormatFlag) Type() string {
	return "text|csv|json"
}

// Value returns the format, text by default.
func (ff FormatFlag) Value() sellers.Format {
	if ff.val == "" {
		return sellers.Text
	}
	return ff.val
}

// EncodingFlag manages a flag to select the input encoding.
type EncodingFlag struct {
	val string
}

var _ pflag.Value = (*EncodingFlag)(nil)

var encodings = []string{"utf-8", "latin1"}

func (ef EncodingFlag) String() string {
	return ef.Value()
}

// Set implements pflag.Value.
func (ef *EncodingFlag) Set(v string) error {
	for _, e := range encodings {
		if strings.EqualFold(e, v) {
			ef.val = e
			return nil
		}
	}
	return fmt.Errorf("unsupported encoding %q (valid: %s)", v, strings.Join(encodings, ", "))
}

// Type implements pflag.Value.
func (ef EncodingFlag) Type() string {
	return strings.Join(encodings, "|")
}

// Value returns the encoding, utf-8 by default.
func (ef EncodingFlag) Value() string {
	if ef.val == "" {
		return encodings[0]
	}
	return ef.val
}
