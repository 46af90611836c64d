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
package report

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// fieldSet is the capability a value must expose to get a field-by-field
// debug dump. Records satisfy it; anything else is dumped with %v.
type fieldSet interface {
	Label() string
	Fields() []string
	Get(string) (string, bool)
}

// Reporter writes the human-readable progress lines. Quiet suppresses
// everything except forced messages; Debug additionally dumps each processed
// entity's field set to console and audit log.
type Reporter struct {
	Quiet bool
	Debug bool
	Out   io.Writer
}

func New(quiet, debug bool) *Reporter {
	return &Reporter{Quiet: quiet, Debug: debug, Out: os.Stdout}
}

// Alertf prints a progress line unless the run is quiet. Every alert also
// lands in the audit log.
func (r *Reporter) Alertf(format string, args ...any) {
	log.Infof(format, args...)
	if r.Quiet {
		return
	}
	fmt.Fprintf(r.Out, format+"\n", args...)
}

// Forcef prints even in quiet mode. Used for errors and anything the user
// must see.
func (r *Reporter) Forcef(format string, args ...any) {
	log.Infof(format, args...)
	fmt.Fprintf(r.Out, format+"\n", args...)
}

// Dump writes a debug rendering of the thing to console and log. Values
// exposing a field set are rendered field by field; plain values with %v.
// No-op unless debug mode is on.
func (r *Reporter) Dump(thing any) {
	if !r.Debug {
		return
	}
	var text string
	if fs, ok := thing.(fieldSet); ok {
		text = fs.Label() + "\n"
		for _, f := range fs.Fields() {
			v, _ := fs.Get(f)
			text += fmt.Sprintf("  %s: %s\n", f, v)
		}
	} else {
		text = fmt.Sprintf("%v\n", thing)
	}
	log.Debug(text)
	fmt.Fprint(r.Out, text)
}
