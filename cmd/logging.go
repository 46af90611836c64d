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
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type compactFormatter struct{}

var levelList = []string{
	"PANIC",
	"FATAL",
	"ERROR",
	"WARN",
	"INFO",
	"DEBUG",
	"TRACE",
}

func (f *compactFormatter) Format(entry *log.Entry) ([]byte, error) {
	level := levelList[int(entry.Level)]
	fileName := filepath.Base(entry.Caller.File)
	// Example log line:
	// 2022-03-23 12:16:42 INFO orders.go:27 Found order 100000031
	msg := fmt.Sprintf("%s %s %s:%d %s\n",
		entry.Time.Format("2006-01-02 15:04:05"), level,
		fileName, entry.Caller.Line, entry.Message)
	return []byte(msg), nil
}

// InitLogging routes all log output to the append-only audit log anon.log
// next to the binary's working directory. The console never sees raw log
// lines; user-facing output goes through the reporter.
func InitLogging(debug bool) {
	logRotator := &lumberjack.Logger{
		Filename:   "anon.log",
		MaxSize:    50, // MB before rotation
		MaxBackups: 5,
	}
	log.SetOutput(logRotator)
	log.SetReportCaller(true)
	log.SetFormatter(&compactFormatter{})
	if debug {
		log.SetLevel(log.DebugLevel)
	}
	log.Info("Logging initialised.")
}
