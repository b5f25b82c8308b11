// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package experiment scopes a peak list to one GC-MS run, identified by a
// code, and supports retention-time-window selection.
package experiment

import (
	"github.com/snowdonr/gcms/gcmserr"
	"github.com/snowdonr/gcms/peak"
	"github.com/snowdonr/gcms/rawdata"
)

// Experiment is a peak list scoped to one run.
type Experiment struct {
	Code  string
	Peaks []*peak.Peak
}

// New builds an Experiment.
func New(code string, peaks []*peak.Peak) *Experiment {
	return &Experiment{Code: code, Peaks: peaks}
}

// SeleRTRange returns a new Experiment retaining only peaks whose RT lies
// strictly within (lo, hi); both bounds are time strings ("<N>s"/"<N>m").
func (e *Experiment) SeleRTRange(loStr, hiStr string) (*Experiment, error) {
	lo, err := rawdata.ParseTimeString(loStr)
	if err != nil {
		return nil, err
	}
	hi, err := rawdata.ParseTimeString(hiStr)
	if err != nil {
		return nil, err
	}
	if lo >= hi {
		return nil, gcmserr.New(gcmserr.InvalidArgument, "SeleRTRange", "lo must be less than hi")
	}
	var out []*peak.Peak
	for _, p := range e.Peaks {
		if p.RT > lo && p.RT < hi {
			out = append(out, p)
		}
	}
	return &Experiment{Code: e.Code, Peaks: out}, nil
}
