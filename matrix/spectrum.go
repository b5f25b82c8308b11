// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matrix

import "github.com/snowdonr/gcms/gcmserr"

// MassSpectrum is intensities vs. mass at one scan.
type MassSpectrum struct {
	MassList    []float64
	Intensities []float64
}

// NewMassSpectrum validates and builds a MassSpectrum.
func NewMassSpectrum(masses, intensities []float64) (*MassSpectrum, error) {
	if len(masses) != len(intensities) {
		return nil, gcmserr.New(gcmserr.ShapeMismatch, "NewMassSpectrum", "mass list and intensities length mismatch")
	}
	return &MassSpectrum{MassList: masses, Intensities: intensities}, nil
}

// SetIntensities replaces the intensities, preserving the length
// invariant with MassList.
func (m *MassSpectrum) SetIntensities(in []float64) error {
	if len(in) != len(m.MassList) {
		return gcmserr.New(gcmserr.ShapeMismatch, "SetIntensities", "length does not match mass list")
	}
	m.Intensities = in
	return nil
}

// Clone returns an independent copy.
func (m *MassSpectrum) Clone() *MassSpectrum {
	if m == nil {
		return nil
	}
	out := &MassSpectrum{
		MassList:    append([]float64(nil), m.MassList...),
		Intensities: append([]float64(nil), m.Intensities...),
	}
	return out
}

// TopMasses returns the n masses with the highest intensity, in descending
// intensity order. Fewer than n are returned if the spectrum is shorter.
func (m *MassSpectrum) TopMasses(n int) []float64 {
	type pair struct {
		mass, intensity float64
	}
	pairs := make([]pair, len(m.MassList))
	for i := range m.MassList {
		pairs[i] = pair{m.MassList[i], m.Intensities[i]}
	}
	// simple selection, spectra are short relative to run length
	out := make([]float64, 0, n)
	used := make([]bool, len(pairs))
	for k := 0; k < n && k < len(pairs); k++ {
		best := -1
		for i, p := range pairs {
			if used[i] {
				continue
			}
			if best == -1 || p.intensity > pairs[best].intensity {
				best = i
			}
		}
		if best == -1 {
			break
		}
		used[best] = true
		out = append(out, pairs[best].mass)
	}
	return out
}
