//
// FrankyGo - UCI chess engine in GO for learning purposes
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package logging sets up a single op/go-logging backend shared by every
// package that calls GetLog. Level and destination are fixed here; callers
// only pick a module name so log lines can be filtered by origin.
package logging

import (
	"os"

	. "github.com/op/go-logging"
)

var backendSet = false

// GetLog returns a named logger writing to stdout. The first call installs
// the shared backend and format; later calls just mint another named
// logger against it.
func GetLog(name string) *Logger {
	log := MustGetLogger(name)
	if !backendSet {
		backend := NewLogBackend(os.Stdout, "", 0)
		format := MustStringFormatter(
			`%{time:15:04:05.000} %{shortfile}:%{shortfunc} %{level:7s}:  %{message}`,
		)
		backendFormatter := NewBackendFormatter(backend, format)
		backendLeveled := AddModuleLevel(backendFormatter)
		backendLeveled.SetLevel(DEBUG, "")
		SetBackend(backendLeveled)
		backendSet = true
	}
	return log
}
