// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import (
	"sort"

	"github.com/snowdonr/gcms/peak"
)

// MergeAlignments walks a Needleman-Wunsch trace, interleaving A's and B's
// positions (with nulls on the side that did not contribute to a gap
// step), re-sorts by mean non-null RT, and accumulates the scalar
// similarity: a match contributes 1-S[i][j], a gap step subtracts gap.
func MergeAlignments(a, b *Alignment, trace []int, s [][]float64, gap float64) *Alignment {
	merged := &Alignment{
		ExprCodes: append(append([]string{}, a.ExprCodes...), b.ExprCodes...),
	}

	ia, ib := 0, 0
	similarity := 0.0
	positions := make([][]*peak.Peak, 0, len(trace))
	for _, tc := range trace {
		switch traceCode(tc) {
		case traceMatch:
			row := append(append([]*peak.Peak{}, a.PeakAlgt[ia]...), b.PeakAlgt[ib]...)
			positions = append(positions, row)
			similarity += 1 - s[ia][ib]
			ia++
			ib++
		case traceGapB:
			row := append(append([]*peak.Peak{}, a.PeakAlgt[ia]...), nullRow(len(b.ExprCodes))...)
			positions = append(positions, row)
			similarity -= gap
			ia++
		case traceGapA:
			row := append(nullRow(len(a.ExprCodes)), b.PeakAlgt[ib]...)
			positions = append(positions, row)
			similarity -= gap
			ib++
		}
	}

	sort.SliceStable(positions, func(i, j int) bool {
		return meanRT(positions[i]) < meanRT(positions[j])
	})

	merged.PeakAlgt = positions
	merged.PeakPos = transpose(positions, len(merged.ExprCodes))
	merged.Similarity = similarity
	merged.HasSimilarity = true
	return merged
}
