// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package peak

import (
	"github.com/snowdonr/gcms/gcmserr"
	"github.com/snowdonr/gcms/matrix"
)

// BillerBiemann detects peaks in an IntensityMatrix: per-ion local maxima
// (points-wide window, with plateau handling) followed by a coalescing
// pass that merges nearby apex rows into the row with the highest row sum
// within each scans-wide block.
func BillerBiemann(im *matrix.IntensityMatrix, points, scans int) ([]*Peak, error) {
	if points < 3 || points%2 == 0 {
		return nil, gcmserr.New(gcmserr.InvalidArgument, "BillerBiemann", "points must be odd and at least 3")
	}
	if scans < 1 {
		return nil, gcmserr.New(gcmserr.InvalidArgument, "BillerBiemann", "scans must be at least 1")
	}

	rows, cols := im.Rows(), im.Cols()
	mask := make([][]float64, rows)
	for r := range mask {
		mask[r] = make([]float64, cols)
	}
	for c := 0; c < cols; c++ {
		col := im.ColumnValues(c)
		for _, idx := range MaximaIndices(col, points) {
			mask[idx][c] = col[idx]
		}
	}

	coalesced := coalesce(mask, scans)

	masses := im.Masses()
	times := im.Times()
	var peaks []*Peak
	for r := 0; r < rows; r++ {
		if allZero(coalesced[r]) {
			continue
		}
		ms, err := matrix.NewMassSpectrum(append([]float64(nil), masses...), append([]float64(nil), coalesced[r]...))
		if err != nil {
			return nil, err
		}
		peaks = append(peaks, New(times[r], ms, [3]int{0, r, 0}))
	}
	return peaks, nil
}

// MaximaIndices finds, within a sliding window of width points centered at
// each candidate index, the local maxima of y. A run of equal values (a
// plateau) qualifies as one maximum, reported at its midpoint, when it is
// strictly higher than every point within half the window on both sides;
// a plateau touching either end of y never qualifies.
func MaximaIndices(y []float64, points int) []int {
	h := (points - 1) / 2
	n := len(y)
	var out []int
	i := h
	for i < n-h {
		j := i
		for j+1 < n && y[j+1] == y[i] {
			j++
		}
		leftOK := i-h >= 0
		for k := i - h; leftOK && k < i; k++ {
			if y[k] >= y[i] {
				leftOK = false
			}
		}
		rightOK := j+h < n
		for k := j + 1; rightOK && k <= j+h; k++ {
			if y[k] >= y[i] {
				rightOK = false
			}
		}
		if leftOK && rightOK {
			out = append(out, (i+j)/2)
		}
		i = j + 1
	}
	return out
}

// coalesce slides a scans-wide window centered on every row in turn and
// consolidates that window's apex intensities into whichever scan within
// it currently carries the highest row sum, zeroing the rest. Because the
// window is evaluated and applied row by row, a consolidation made while
// processing an earlier row is visible to every later row's window.
func coalesce(mask [][]float64, scans int) [][]float64 {
	rows := len(mask)
	out := make([][]float64, rows)
	for r := range mask {
		out[r] = append([]float64(nil), mask[r]...)
	}
	half := scans / 2
	for row := 0; row < rows; row++ {
		best := 0.0
		loc := 0
		for ii := 0; ii < scans; ii++ {
			if idx := row - half + ii; idx >= 0 && idx < rows {
				if s := rowSum(out[idx]); s > best {
					best, loc = s, ii
				}
			}
		}
		dest := row - half + loc
		for ii := 0; ii < scans; ii++ {
			source := row - half + ii
			if source < 0 || source >= rows || ii == loc {
				continue
			}
			for c := range out[source] {
				if out[source][c] != 0 {
					out[dest][c] += out[source][c]
					out[source][c] = 0
				}
			}
		}
	}
	return out
}

func rowSum(row []float64) float64 {
	s := 0.0
	for _, v := range row {
		s += v
	}
	return s
}

func allZero(row []float64) bool {
	for _, v := range row {
		if v != 0 {
			return false
		}
	}
	return true
}
