// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rawdata

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/snowdonr/gcms/gcmserr"
)

var timeStringPattern = regexp.MustCompile(`(?i)^\s*([0-9]*\.?[0-9]+)\s*([sm])\s*$`)

// ParseTimeString parses a time string of the form "<number>s" or
// "<number>m" (case-insensitive suffix) into seconds.
func ParseTimeString(s string) (float64, error) {
	m := timeStringPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, gcmserr.New(gcmserr.InvalidArgument, "ParseTimeString", "malformed time string "+strconv.Quote(s))
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, gcmserr.Wrap(gcmserr.InvalidArgument, "ParseTimeString", err)
	}
	switch strings.ToLower(m[2]) {
	case "s":
		return v, nil
	case "m":
		return v * 60, nil
	default:
		return 0, gcmserr.New(gcmserr.InvalidArgument, "ParseTimeString", "unrecognized time suffix")
	}
}

// ResolveWindowPoints interprets spec as either a bare point count (a plain
// integer) or a time string, and returns the equivalent point count given
// the run's mean time step.
func ResolveWindowPoints(spec string, timeStep float64) (int, error) {
	trimmed := strings.TrimSpace(spec)
	if n, err := strconv.Atoi(trimmed); err == nil {
		return n, nil
	}
	secs, err := ParseTimeString(trimmed)
	if err != nil {
		return 0, err
	}
	if timeStep <= 0 {
		return 0, gcmserr.New(gcmserr.InvalidArgument, "ResolveWindowPoints", "time step must be positive to resolve a time-string window")
	}
	return int(math.Floor(secs / timeStep)), nil
}
