// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package peak implements peak detection (Biller-Biemann), filtering,
// overlap culling, and area integration over an IntensityMatrix.
package peak

import (
	"fmt"

	"github.com/snowdonr/gcms/gcmserr"
	"github.com/snowdonr/gcms/matrix"
)

// Peak is one detected or composited chromatographic peak.
type Peak struct {
	RT       float64
	Spectrum *matrix.MassSpectrum // nil for spectrum-less composite peaks

	BoundsLeft, ApexScan, BoundsRight int

	Area    float64
	AreaMap map[float64]float64

	Outlier bool

	uid string
}

// New builds a Peak and computes its UID.
func New(rt float64, spectrum *matrix.MassSpectrum, bounds [3]int) *Peak {
	p := &Peak{
		RT:          rt,
		Spectrum:    spectrum,
		BoundsLeft:  bounds[0],
		ApexScan:    bounds[1],
		BoundsRight: bounds[2],
		AreaMap:     map[float64]float64{},
	}
	p.updateUID()
	return p
}

// UID is the deterministic peak identifier derived from spectrum and RT.
func (p *Peak) UID() string { return p.uid }

func (p *Peak) updateUID() {
	if p.Spectrum == nil || len(p.Spectrum.Intensities) == 0 {
		p.uid = fmt.Sprintf("%.2f", p.RT)
		return
	}
	top := p.Spectrum.TopMasses(2)
	if len(top) < 2 {
		p.uid = fmt.Sprintf("%.2f", p.RT)
		return
	}
	i1 := intensityFor(p.Spectrum, top[0])
	i2 := intensityFor(p.Spectrum, top[1])
	if i1 <= 0 {
		p.uid = fmt.Sprintf("%.2f", p.RT)
		return
	}
	ratio := int(100 * i2 / i1)
	p.uid = fmt.Sprintf("%g-%g-%d-%.2f", top[0], top[1], ratio, p.RT)
}

func intensityFor(ms *matrix.MassSpectrum, mass float64) float64 {
	for i, m := range ms.MassList {
		if m == mass {
			return ms.Intensities[i]
		}
	}
	return 0
}

// SetArea sets the total integrated area; it must be positive.
func (p *Peak) SetArea(area float64) error {
	if area <= 0 {
		return gcmserr.New(gcmserr.InvalidArgument, "SetArea", "area must be positive")
	}
	p.Area = area
	return nil
}

// CropMass crops the peak's spectrum mass range and recomputes the UID.
func (p *Peak) CropMass(lo, hi float64) error {
	if p.Spectrum == nil {
		return nil
	}
	var masses, intensities []float64
	for i, m := range p.Spectrum.MassList {
		if m >= lo && m <= hi {
			masses = append(masses, m)
			intensities = append(intensities, p.Spectrum.Intensities[i])
		}
	}
	spectrum, err := matrix.NewMassSpectrum(masses, intensities)
	if err != nil {
		return err
	}
	p.Spectrum = spectrum
	p.updateUID()
	return nil
}

// NullMass zeros the intensity of the spectrum entry nearest mass and
// recomputes the UID.
func (p *Peak) NullMass(mass float64) error {
	if p.Spectrum == nil {
		return nil
	}
	best, bestDelta := -1, 0.0
	for i, m := range p.Spectrum.MassList {
		d := m - mass
		if d < 0 {
			d = -d
		}
		if best == -1 || d < bestDelta {
			best, bestDelta = i, d
		}
	}
	if best >= 0 {
		p.Spectrum.Intensities[best] = 0
	}
	p.updateUID()
	return nil
}

// Clone returns an independent deep copy.
func (p *Peak) Clone() *Peak {
	clone := &Peak{
		RT:          p.RT,
		Spectrum:    p.Spectrum.Clone(),
		BoundsLeft:  p.BoundsLeft,
		ApexScan:    p.ApexScan,
		BoundsRight: p.BoundsRight,
		Area:        p.Area,
		Outlier:     p.Outlier,
		AreaMap:     map[float64]float64{},
	}
	for k, v := range p.AreaMap {
		clone.AreaMap[k] = v
	}
	clone.updateUID()
	return clone
}
