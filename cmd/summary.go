/*
Copyright (c) MagentoAnon Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/groggu/MagentoAnon/src/phases"
)

// printSummary renders the per-phase outcome table after a run.
func printSummary(results []phases.Result) {
	if len(results) == 0 || quietMode {
		return
	}

	headerfmt := color.New(color.FgGreen, color.Underline).SprintFunc()
	table := uitable.New()
	table.AddRow(headerfmt("PHASE"), headerfmt("UPDATES"), headerfmt("DELETES"), headerfmt("MODE"))
	for _, res := range results {
		mode := "committed"
		if res.DryRun {
			mode = "test (no changes)"
		}
		table.AddRow(res.Phase, res.Updates, res.Deletes, mode)
	}
	fmt.Printf("\n%s\n\n", table)
}
