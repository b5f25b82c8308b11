// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gapfill reintegrates missing peaks at alignment positions
// where some experiments have no detected peak: it rebuilds a
// per-experiment binned matrix, smooths it the same way the detection
// pipeline does, and searches a small window around the gap's expected
// retention time for a local maximum on the position's common ion whose
// two qualifier ions are also present.
package gapfill

import (
	"github.com/snowdonr/gcms/align"
	"github.com/snowdonr/gcms/baseline"
	"github.com/snowdonr/gcms/gcmserr"
	"github.com/snowdonr/gcms/matrix"
	"github.com/snowdonr/gcms/peak"
	"github.com/snowdonr/gcms/rawdata"
	"github.com/snowdonr/gcms/smooth"
)

// Options configures one gap-filling pass.
type Options struct {
	SearchWindowSpec string // time-string radius around the expected RT to search, e.g. "5s"
	SmoothWindowSpec string // Savitzky-Golay window, applied twice
	SmoothDegree     int
	TopHatSpec       string // structuring-element size; when empty, 0.2 of the run length is used
	MaxBound         int
	Tolerance        float64
	QualifierRatio   float64 // fraction of the position's common-ion intensity a candidate must clear
}

// DefaultOptions mirrors the detection pipeline's usual smoothing and
// integration parameters.
func DefaultOptions() Options {
	return Options{
		SearchWindowSpec: "5s",
		SmoothWindowSpec: "3s",
		SmoothDegree:     2,
		TopHatSpec:       "1.5m",
		MaxBound:         1_000_000,
		Tolerance:        2,
		QualifierRatio:   0.5,
	}
}

// Found is one replacement peak for the nil slot at (Position,
// Experiment) of an alignment.
type Found struct {
	Position, Experiment int
	Peak                 *peak.Peak
}

// Fill finds a replacement peak for every nil slot in the alignment's
// per-experiment columns, given the raw data backing each experiment in
// the same order as the alignment's experiment codes. missing peaks are
// not added back into the alignment; Fill returns the constructed
// replacement peaks keyed by (position, experiment) so the caller can
// decide how to splice them in.
func Fill(a *align.Alignment, raws []*rawdata.RawData, binOpt matrix.BinningOptions, opt Options) ([]Found, error) {
	if len(raws) != len(a.ExprCodes) {
		return nil, gcmserr.New(gcmserr.ShapeMismatch, "Fill", "raw data count does not match experiment count")
	}

	ims := make([]*matrix.IntensityMatrix, len(raws))
	for e, raw := range raws {
		im, err := matrix.Build(raw, binOpt)
		if err != nil {
			return nil, err
		}
		timeStep := meanTimeStep(raw)
		if err := smooth.SavitzkyGolayIM(im, opt.SmoothWindowSpec, opt.SmoothDegree, timeStep); err != nil {
			return nil, err
		}
		if err := smooth.SavitzkyGolayIM(im, opt.SmoothWindowSpec, opt.SmoothDegree, timeStep); err != nil {
			return nil, err
		}
		if err := baseline.TopHatIM(im, opt.TopHatSpec, timeStep); err != nil {
			return nil, err
		}
		ims[e] = im
	}

	var found []Found
	for pos, row := range a.PeakAlgt {
		commonIon := align.CommonIon(row)
		if commonIon == 0 {
			commonIon = highestMzAcrossRow(row, 0.1)
		}
		if commonIon == 0 {
			continue
		}
		qual1 := highestMzAcrossRow(row, 0.1)
		qual2 := highestMzAcrossRowExcept(row, 0.1, qual1)
		expectedRT := meanRT(row)
		radius, haveBounds := averageBoundsRadius(ims, row)

		for e, p := range row {
			if p != nil {
				continue
			}
			im := ims[e]
			r := radius
			if !haveBounds {
				timeStep := meanTimeStep(raws[e])
				rr, err := rawdata.ResolveWindowPoints(opt.SearchWindowSpec, timeStep)
				if err != nil {
					return nil, err
				}
				r = rr
			}
			if r < 1 {
				r = 1
			}
			apex := nearestScan(im.Times(), expectedRT)
			lo, hi := apex-r, apex+r
			if lo < 0 {
				lo = 0
			}
			if hi >= im.Rows() {
				hi = im.Rows() - 1
			}
			if hi <= lo {
				continue
			}

			ciCol := im.ColumnValues(im.ColumnIndexForMass(commonIon))
			q1Col := im.ColumnValues(im.ColumnIndexForMass(qual1))
			q2Col := im.ColumnValues(im.ColumnIndexForMass(qual2))

			ciThreshold := maxInRange(ciCol, lo, hi) * opt.QualifierRatio
			q1Threshold := maxInRange(q1Col, lo, hi) * opt.QualifierRatio / 2
			q2Threshold := maxInRange(q2Col, lo, hi) * opt.QualifierRatio / 2

			candidates := peak.MaximaIndices(ciCol[lo:hi+1], 3)

			best, bestArea := -1, 0.0
			for _, rel := range candidates {
				idx := lo + rel
				if ciCol[idx] < ciThreshold {
					continue
				}
				if q1Col[idx] < q1Threshold || q2Col[idx] < q2Threshold {
					continue
				}
				area, err := peak.IonArea(ciCol, idx, opt.MaxBound, opt.Tolerance)
				if err != nil {
					continue
				}
				if best == -1 || area > bestArea {
					best, bestArea = idx, area
				}
			}
			if best == -1 {
				continue
			}

			spectrum, err := im.Row(best)
			if err != nil {
				return nil, err
			}
			newPeak := peak.New(im.Times()[best], spectrum, [3]int{lo, best, hi})
			if bestArea > 0 {
				_ = newPeak.SetArea(bestArea)
			}
			found = append(found, Found{Position: pos, Experiment: e, Peak: newPeak})
		}
	}
	return found, nil
}

func maxInRange(col []float64, lo, hi int) float64 {
	max := 0.0
	for i := lo; i <= hi && i < len(col); i++ {
		if col[i] > max {
			max = col[i]
		}
	}
	return max
}

// averageBoundsRadius estimates a symmetric search-window radius, in
// scans, from PtBounds of the row's non-null peaks against their own
// experiment's matrix. It reports false when no member has a usable
// spectrum, so the caller can fall back to a fixed window.
func averageBoundsRadius(ims []*matrix.IntensityMatrix, row []*peak.Peak) (int, bool) {
	sum, n := 0, 0
	for i, p := range row {
		if p == nil {
			continue
		}
		b, err := peak.PtBounds(ims[i], p)
		if err != nil {
			continue
		}
		sum += b[0] + b[2]
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / (2 * n), true
}

func nearestScan(times []float64, rt float64) int {
	best, bestDelta := 0, -1.0
	for i, t := range times {
		d := t - rt
		if d < 0 {
			d = -d
		}
		if bestDelta < 0 || d < bestDelta {
			best, bestDelta = i, d
		}
	}
	return best
}

func meanTimeStep(raw *rawdata.RawData) float64 {
	mean, _ := raw.TimeStep()
	return mean
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

func highestMzAcrossRow(row []*peak.Peak, threshold float64) float64 {
	best := 0.0
	for _, p := range row {
		if p == nil || p.Spectrum == nil {
			continue
		}
		if m := align.HighestMzIon(p.Spectrum, threshold); m > best {
			best = m
		}
	}
	return best
}

// highestMzAcrossRowExcept is highestMzAcrossRow with one mass excluded,
// used to derive a second, distinct qualifier ion.
func highestMzAcrossRowExcept(row []*peak.Peak, threshold, exclude float64) float64 {
	best := 0.0
	for _, p := range row {
		if p == nil || p.Spectrum == nil {
			continue
		}
		if m := align.HighestMzIonExcept(p.Spectrum, threshold, exclude); m > best {
			best = m
		}
	}
	return best
}
