// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rawdata holds the raw, unbinned scan data read from a GC-MS
// acquisition file and the contract that file-format parsers must satisfy
// to feed the rest of the pipeline.
package rawdata

import (
	"math"

	"github.com/snowdonr/gcms/gcmserr"
)

// Scan is one mass-spectrometer acquisition: a sparse list of (mass,
// intensity) pairs sorted by mass. Scans are immutable after construction.
type Scan struct {
	Masses      []float64
	Intensities []float64
}

// NewScan validates and builds a Scan. Masses must be sorted and
// intensities must be non-negative.
func NewScan(masses, intensities []float64) (Scan, error) {
	if len(masses) != len(intensities) {
		return Scan{}, gcmserr.New(gcmserr.ShapeMismatch, "NewScan", "masses and intensities length mismatch")
	}
	for i := 1; i < len(masses); i++ {
		if masses[i] < masses[i-1] {
			return Scan{}, gcmserr.New(gcmserr.InvalidArgument, "NewScan", "masses must be sorted ascending")
		}
	}
	for _, v := range intensities {
		if v < 0 {
			return Scan{}, gcmserr.New(gcmserr.InvalidArgument, "NewScan", "intensities must be non-negative")
		}
	}
	return Scan{Masses: masses, Intensities: intensities}, nil
}

// RawData is a GC-MS run: a strictly increasing retention-time vector and
// one Scan per time point.
type RawData struct {
	Times []float64
	Scans []Scan
}

// New validates and builds a RawData.
func New(times []float64, scans []Scan) (*RawData, error) {
	if len(times) != len(scans) {
		return nil, gcmserr.New(gcmserr.ShapeMismatch, "New", "times and scans length mismatch")
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return nil, gcmserr.New(gcmserr.InvalidArgument, "New", "times must be strictly increasing")
		}
	}
	return &RawData{Times: times, Scans: scans}, nil
}

// MinMass returns the minimum mass seen across all scans.
func (r *RawData) MinMass() float64 {
	min := math.Inf(1)
	for _, sc := range r.Scans {
		for _, m := range sc.Masses {
			if m < min {
				min = m
			}
		}
	}
	if math.IsInf(min, 1) {
		return 0
	}
	return min
}

// MaxMass returns the maximum mass seen across all scans.
func (r *RawData) MaxMass() float64 {
	max := math.Inf(-1)
	for _, sc := range r.Scans {
		for _, m := range sc.Masses {
			if m > max {
				max = m
			}
		}
	}
	if math.IsInf(max, -1) {
		return 0
	}
	return max
}

// TimeStep returns the mean and standard deviation of the retention-time
// deltas.
func (r *RawData) TimeStep() (mean, std float64) {
	n := len(r.Times) - 1
	if n <= 0 {
		return 0, 0
	}
	sum := 0.0
	deltas := make([]float64, n)
	for i := 0; i < n; i++ {
		d := r.Times[i+1] - r.Times[i]
		deltas[i] = d
		sum += d
	}
	mean = sum / float64(n)
	var sq float64
	for _, d := range deltas {
		sq += (d - mean) * (d - mean)
	}
	std = math.Sqrt(sq / float64(n))
	return mean, std
}

// TIC returns the total ion chromatogram: the per-scan sum of intensities.
func (r *RawData) TIC() []float64 {
	out := make([]float64, len(r.Scans))
	for i, sc := range r.Scans {
		s := 0.0
		for _, v := range sc.Intensities {
			s += v
		}
		out[i] = s
	}
	return out
}

// Loader is the pluggable ingestion collaborator: a concrete implementation
// parses one raw-data file format (JCAMP-DX, ANDI/netCDF, mzML, ...) and
// produces a validated RawData. No implementation ships in this package;
// callers supply their own per spec.
type Loader interface {
	Load(path string) (*RawData, error)
}
