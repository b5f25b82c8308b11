// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import "github.com/snowdonr/gcms/gcmserr"

// traceCode is the Needleman-Wunsch traceback direction: 0 match, 1
// gap-in-B (consume a row of A alone), 2 gap-in-A (consume a column of B
// alone), 3 stop (origin).
type traceCode int

const (
	traceMatch traceCode = 0
	traceGapB  traceCode = 1
	traceGapA  traceCode = 2
	traceStop  traceCode = 3
)

// NeedlemanWunsch runs global alignment dynamic programming over a
// lower-is-better score matrix s with a linear gap penalty, returning the
// traceback as a sequence of direction codes from start to end.
func NeedlemanWunsch(s [][]float64, gap float64) ([]int, error) {
	rows := len(s)
	if rows == 0 {
		return nil, gcmserr.New(gcmserr.EmptyAlignment, "NeedlemanWunsch", "zero rows")
	}
	cols := len(s[0])
	if cols == 0 {
		return nil, gcmserr.New(gcmserr.EmptyAlignment, "NeedlemanWunsch", "zero cols")
	}

	d := make([][]float64, rows+1)
	trace := make([][]traceCode, rows+1)
	for i := range d {
		d[i] = make([]float64, cols+1)
		trace[i] = make([]traceCode, cols+1)
	}
	trace[0][0] = traceStop
	for i := 1; i <= rows; i++ {
		d[i][0] = float64(i) * gap
		trace[i][0] = traceGapB
	}
	for j := 1; j <= cols; j++ {
		d[0][j] = float64(j) * gap
		trace[0][j] = traceGapA
	}
	for i := 1; i <= rows; i++ {
		for j := 1; j <= cols; j++ {
			match := d[i-1][j-1] + s[i-1][j-1]
			gapB := d[i-1][j] + gap
			gapA := d[i][j-1] + gap
			best, tc := match, traceMatch
			if gapB < best {
				best, tc = gapB, traceGapB
			}
			if gapA < best {
				best, tc = gapA, traceGapA
			}
			d[i][j] = best
			trace[i][j] = tc
		}
	}

	var rev []int
	i, j := rows, cols
	for i > 0 || j > 0 {
		switch trace[i][j] {
		case traceMatch:
			rev = append(rev, int(traceMatch))
			i--
			j--
		case traceGapB:
			rev = append(rev, int(traceGapB))
			i--
		case traceGapA:
			rev = append(rev, int(traceGapA))
			j--
		default:
			i, j = 0, 0
		}
	}
	out := make([]int, len(rev))
	for k, v := range rev {
		out[len(rev)-1-k] = v
	}
	return out, nil
}
