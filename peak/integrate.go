// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package peak

import (
	"github.com/snowdonr/gcms/gcmserr"
	"github.com/snowdonr/gcms/matrix"
)

// halfArea expands from y[0] (the apex) outward along one side, stopping
// when the trailing 3-point edge average stops decreasing or drops to the
// noise floor set by tol, or when maxBound/len(y) is reached.
func halfArea(y []float64, maxBound int, tol float64) (area float64, offset int, shared bool) {
	n := len(y)
	if n == 0 {
		return 0, 0, false
	}
	area = y[0]
	edge := windowMean(y, 0, 3)
	oldEdge := area + 1 // anything larger than the first edge estimate
	idx := 1
	for idx < n && idx < maxBound && edge < oldEdge && edge > area*tol/200 {
		area += y[idx]
		oldEdge = edge
		edge = windowMean(y, idx, 3)
		idx++
	}
	shared = edge >= oldEdge
	return area, idx, shared
}

func windowMean(y []float64, start, width int) float64 {
	end := start + width
	if end > len(y) {
		end = len(y)
	}
	if start >= end {
		return 0
	}
	sum := 0.0
	for _, v := range y[start:end] {
		sum += v
	}
	return sum / float64(end-start)
}

// IonArea integrates one ion chromatogram column around apex by expanding
// half_area to the left (reversed) and right, correcting for the
// double-counted apex sample.
func IonArea(column []float64, apex, maxBound int, tol float64) (float64, error) {
	if apex < 0 || apex >= len(column) {
		return 0, gcmserr.New(gcmserr.IndexOutOfRange, "IonArea", "apex out of range")
	}
	left := reversed(column[:apex+1])
	right := column[apex:]
	leftArea, _, _ := halfArea(left, maxBound, tol)
	rightArea, _, _ := halfArea(right, maxBound, tol)
	return leftArea + rightArea - column[apex], nil
}

func reversed(y []float64) []float64 {
	out := make([]float64, len(y))
	for i, v := range y {
		out[len(y)-1-i] = v
	}
	return out
}

// PeakSumArea integrates every ion with non-zero apex intensity and sets
// the peak's total area and per-ion area map.
func PeakSumArea(im *matrix.IntensityMatrix, p *Peak, maxBound int, tol float64) error {
	if p.Spectrum == nil {
		return gcmserr.New(gcmserr.InvalidArgument, "PeakSumArea", "peak has no spectrum")
	}
	total := 0.0
	areaMap := map[float64]float64{}
	for j, mass := range p.Spectrum.MassList {
		if p.Spectrum.Intensities[j] <= 0 {
			continue
		}
		col := im.ColumnValues(im.ColumnIndexForMass(mass))
		a, err := IonArea(col, p.ApexScan, maxBound, tol)
		if err != nil {
			continue
		}
		areaMap[mass] = a
		total += a
	}
	p.AreaMap = areaMap
	return p.SetArea(total)
}

// PeakTopIonAreas integrates only the top n masses by apex intensity,
// returning their per-ion areas without mutating the peak.
func PeakTopIonAreas(im *matrix.IntensityMatrix, p *Peak, n, maxBound int, tol float64) (map[float64]float64, error) {
	if p.Spectrum == nil {
		return nil, gcmserr.New(gcmserr.InvalidArgument, "PeakTopIonAreas", "peak has no spectrum")
	}
	top := p.Spectrum.TopMasses(n)
	out := map[float64]float64{}
	for _, mass := range top {
		col := im.ColumnValues(im.ColumnIndexForMass(mass))
		a, err := IonArea(col, p.ApexScan, maxBound, tol)
		if err != nil {
			continue
		}
		out[mass] = a
	}
	return out, nil
}
