// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package peak

import (
	"sort"

	"github.com/snowdonr/gcms/gcmserr"
	"github.com/snowdonr/gcms/matrix"
)

// PtBounds is a supplementary alternative to the ion_area/half_area
// edge-tracking bounds: for every ion with non-zero apex intensity it
// walks outward from the apex (see percentileBounds) and returns the
// mean left and right scan offsets as (left, apex, right). It does not
// compute the 2.5th/97.5th percentiles of each ion's distribution. Useful
// as a sanity cross-check and for sizing the gap-filler's search window.
func PtBounds(im *matrix.IntensityMatrix, p *Peak) ([3]int, error) {
	if p.Spectrum == nil {
		return [3]int{}, gcmserr.New(gcmserr.InvalidArgument, "PtBounds", "peak has no spectrum")
	}
	var left, right int
	count := 0
	for j, mass := range p.Spectrum.MassList {
		if p.Spectrum.Intensities[j] <= 0 {
			continue
		}
		col := im.ColumnValues(im.ColumnIndexForMass(mass))
		l, r := percentileBounds(col, p.ApexScan, 0.025)
		left += p.ApexScan - l
		right += r - p.ApexScan
		count++
	}
	if count == 0 {
		return [3]int{0, p.ApexScan, 0}, nil
	}
	return [3]int{left / count, p.ApexScan, right / count}, nil
}

// MedianBounds is the median counterpart of PtBounds: it takes the median
// of the per-ion left and right offsets instead of their mean, so it is
// less sensitive to a single noisy contributing ion.
func MedianBounds(im *matrix.IntensityMatrix, p *Peak) ([3]int, error) {
	if p.Spectrum == nil {
		return [3]int{}, gcmserr.New(gcmserr.InvalidArgument, "MedianBounds", "peak has no spectrum")
	}
	var lefts, rights []float64
	for j, mass := range p.Spectrum.MassList {
		if p.Spectrum.Intensities[j] <= 0 {
			continue
		}
		col := im.ColumnValues(im.ColumnIndexForMass(mass))
		l, r := percentileBounds(col, p.ApexScan, 0.025)
		lefts = append(lefts, float64(p.ApexScan-l))
		rights = append(rights, float64(r-p.ApexScan))
	}
	if len(lefts) == 0 {
		return [3]int{0, p.ApexScan, 0}, nil
	}
	sort.Float64s(lefts)
	sort.Float64s(rights)
	return [3]int{int(median(lefts)), p.ApexScan, int(median(rights))}, nil
}

// percentileBounds walks outward from apex in a single ion chromatogram
// column, on each side independently, until the intensity accumulated on
// that side reaches tailShare of the whole column's total or the column
// ends.
func percentileBounds(col []float64, apex int, tailShare float64) (left, right int) {
	total := 0.0
	for _, v := range col {
		total += v
	}
	if total <= 0 {
		return apex, apex
	}
	threshold := total * tailShare

	l := apex
	acc := 0.0
	for l > 0 && acc < threshold {
		acc += col[l-1]
		l--
	}
	r := apex
	acc = 0.0
	for r < len(col)-1 && acc < threshold {
		acc += col[r+1]
		r++
	}
	return l, r
}
