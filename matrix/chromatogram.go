// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package matrix holds the dense time x mass representation of a GC-MS run
// and its row/column views: the IonChromatogram and MassSpectrum.
package matrix

import "github.com/snowdonr/gcms/gcmserr"

// ChromatogramKind tags an IonChromatogram with its provenance. The
// original duck-typed attribute presence (mass set vs. single mass vs.
// neither) is replaced with a small closed set of concrete variants.
type ChromatogramKind interface {
	isChromatogramKind()
}

// TIC is the total ion chromatogram: no tagged mass.
type TIC struct{}

// BasePeakChromatogram is the per-scan maximum intensity across masses.
type BasePeakChromatogram struct{}

// ExtractedIon is the summed intensity over a mass subset.
type ExtractedIon struct {
	Masses []float64
}

// SingleIon is the intensity of a single mass.
type SingleIon struct {
	Mass float64
}

func (TIC) isChromatogramKind()                  {}
func (BasePeakChromatogram) isChromatogramKind()  {}
func (ExtractedIon) isChromatogramKind()          {}
func (SingleIon) isChromatogramKind()             {}

// IonChromatogram is a dense intensity array indexed by scan, paired with
// the shared retention-time vector.
type IonChromatogram struct {
	Times       []float64
	Intensities []float64
	Kind        ChromatogramKind
}

// NewIonChromatogram validates and builds an IonChromatogram.
func NewIonChromatogram(times, intensities []float64, kind ChromatogramKind) (*IonChromatogram, error) {
	if len(times) != len(intensities) {
		return nil, gcmserr.New(gcmserr.ShapeMismatch, "NewIonChromatogram", "intensities and times length mismatch")
	}
	return &IonChromatogram{Times: times, Intensities: intensities, Kind: kind}, nil
}
