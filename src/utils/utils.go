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
package utils

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"
)

// DoNotPrompt makes AskPrompt auto-answer yes. Set by the --force flag.
var DoNotPrompt bool

var (
	// ErrExitErr holds the last error passed to ErrExit.
	ErrExitErr error

	// exitHook is what ErrExit calls to terminate.
	// Default = atexit.Exit, but you can override it.
	exitHook = atexit.Exit
)

// SetExitHook lets callers replace the termination behaviour.
// Pass nil to restore the default (atexit.Exit).
func SetExitHook(h func(code int)) {
	if h == nil {
		exitHook = atexit.Exit
	} else {
		exitHook = h
	}
}

// ErrExit prints the formatted error and then terminates via exitHook.
func ErrExit(format string, args ...interface{}) {
	ErrExitErr = fmt.Errorf(format, args...)

	format = strings.Replace(format, "%w", "%s", -1)
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	log.Errorf(format+"\n", args...)

	exitHook(1)
}

func PrintAndLog(formatString string, args ...interface{}) {
	log.Infof(formatString, args...)
	if !strings.HasSuffix(formatString, "\n") {
		formatString = formatString + "\n"
	}
	fmt.Printf(formatString, args...)
}

// AskPrompt prints the args as a question and waits for a yes/no answer.
// Anything other than an affirmative answer is a no.
func AskPrompt(args ...string) bool {
	if DoNotPrompt {
		return true
	}
	var input string
	argsLen := len(args)

	for i := 0; i < argsLen; i++ {
		if i != argsLen-1 {
			fmt.Printf("%s ", args[i])
		} else {
			fmt.Printf("%s", args[i])
		}
	}
	fmt.Printf("? [Y/N]: ")

	_, err := fmt.Scan(&input)
	if err != nil {
		return false
	}

	input = strings.TrimSpace(input)
	input = strings.ToUpper(input)

	return input == "Y" || input == "YES"
}

// BoolStr is a pflag value for flags that take an explicit boolean word,
// e.g. --test=true or --debug yes.
type BoolStr bool

func (b *BoolStr) Set(s string) error {
	switch strings.ToLower(s) {
	case "true", "yes", "y", "1":
		*b = true
	case "false", "no", "n", "0":
		*b = false
	default:
		return fmt.Errorf("invalid boolean value: %q (valid values: true, false)", s)
	}
	return nil
}

func (b *BoolStr) Type() string {
	return "boolean"
}

func (b *BoolStr) String() string {
	if *b {
		return "true"
	}
	return "false"
}

func FileOrFolderExists(path string) bool {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false
		}
		panic(err)
	}
	return true
}
