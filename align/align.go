// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package align implements the GC-MS cross-experiment alignment core:
// score matrices, Needleman-Wunsch dynamic programming, alignment merging,
// UPGMA guide-tree hierarchical clustering, and the parallel pairwise
// similarity computation that drives it.
package align

import (
	"github.com/snowdonr/gcms/experiment"
	"github.com/snowdonr/gcms/peak"
)

// Alignment is a 2-D sparse table of peak slots (or nils), maintained in
// two synchronized views: PeakPos[experiment][position] and
// PeakAlgt[position][experiment].
type Alignment struct {
	ExprCodes []string
	PeakPos   [][]*peak.Peak
	PeakAlgt  [][]*peak.Peak

	Similarity    float64
	HasSimilarity bool
}

// Len is the number of alignment positions (rows).
func (a *Alignment) Len() int { return len(a.PeakAlgt) }

// FromExperiment returns a singleton Alignment: one column holding the
// experiment's peaks, one position per peak.
func FromExperiment(e *experiment.Experiment) *Alignment {
	peakPos := make([][]*peak.Peak, 1)
	peakPos[0] = append([]*peak.Peak(nil), e.Peaks...)
	peakAlgt := make([][]*peak.Peak, len(e.Peaks))
	for i, p := range e.Peaks {
		peakAlgt[i] = []*peak.Peak{p}
	}
	return &Alignment{ExprCodes: []string{e.Code}, PeakPos: peakPos, PeakAlgt: peakAlgt}
}

// ExprListToAlignments returns one singleton Alignment per experiment.
func ExprListToAlignments(exprs []*experiment.Experiment) []*Alignment {
	out := make([]*Alignment, len(exprs))
	for i, e := range exprs {
		out[i] = FromExperiment(e)
	}
	return out
}

// Align runs the full pairwise pipeline (score matrix, DP, merge) between
// two alignments and returns the merged result.
func Align(a, b *Alignment, d, gap float64) (*Alignment, error) {
	s, err := ScoreMatrix(a, b, d)
	if err != nil {
		return nil, err
	}
	trace, err := NeedlemanWunsch(s, gap)
	if err != nil {
		return nil, err
	}
	return MergeAlignments(a, b, trace, s, gap), nil
}

func meanRT(row []*peak.Peak) float64 {
	sum, count := 0.0, 0
	for _, p := range row {
		if p != nil {
			sum += p.RT
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func nullRow(n int) []*peak.Peak {
	return make([]*peak.Peak, n)
}

// transpose rebuilds PeakPos (per-experiment columns) from PeakAlgt
// (per-position rows).
func transpose(positions [][]*peak.Peak, nExprs int) [][]*peak.Peak {
	out := make([][]*peak.Peak, nExprs)
	for e := 0; e < nExprs; e++ {
		out[e] = make([]*peak.Peak, len(positions))
		for pos, row := range positions {
			out[e][pos] = row[e]
		}
	}
	return out
}

// FilterMinPeaks drops any position whose count of non-null peaks is
// below minPeaks, and retranspose PeakPos to match.
func (a *Alignment) FilterMinPeaks(minPeaks int) {
	if minPeaks <= 1 {
		return
	}
	var kept [][]*peak.Peak
	for _, row := range a.PeakAlgt {
		count := 0
		for _, p := range row {
			if p != nil {
				count++
			}
		}
		if count >= minPeaks {
			kept = append(kept, row)
		}
	}
	a.PeakAlgt = kept
	a.PeakPos = transpose(kept, len(a.ExprCodes))
}
