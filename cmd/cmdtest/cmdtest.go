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

// Package cmdtest runs commands in tests.
package cmdtest

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

// Run executes the command with the given arguments and returns its
// standard output. The test fails if the command fails.
func Run(t *testing.T, cmd *cobra.Command, args []string) []byte {
	t.Helper()
	out, err := Execute(cmd, args)
	if err != nil {
		t.Fatalf("%s %v returned unexpected error: %v", cmd.Name(), args, err)
	}
	return out
}

// Execute executes the command with the given arguments and returns its
// standard output and error.
func Execute(cmd *cobra.Command, args []string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.Bytes(), err
}
