// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smooth

import (
	"sort"

	"github.com/snowdonr/gcms/gcmserr"
	"github.com/snowdonr/gcms/matrix"
	"github.com/snowdonr/gcms/rawdata"
)

// Mode selects the moving-window reduction.
type Mode int

const (
	Mean Mode = iota
	Median
)

func reduce(window []float64, mode Mode) float64 {
	switch mode {
	case Median:
		sorted := append([]float64(nil), window...)
		sort.Float64s(sorted)
		n := len(sorted)
		if n%2 == 1 {
			return sorted[n/2]
		}
		return (sorted[n/2-1] + sorted[n/2]) / 2
	default:
		sum := 0.0
		for _, v := range window {
			sum += v
		}
		return sum / float64(len(window))
	}
}

func movingWindow(y []float64, half int, mode Mode) []float64 {
	out := make([]float64, len(y))
	for i := range y {
		lo, hi := i-half, i+half+1
		if lo < 0 {
			lo = 0
		}
		if hi > len(y) {
			hi = len(y)
		}
		out[i] = reduce(y[lo:hi], mode)
	}
	return out
}

// MovingWindowIC applies a mean or median moving-window smoother to one
// ion chromatogram.
func MovingWindowIC(ic *matrix.IonChromatogram, windowSpec string, mode Mode, timeStep float64) (*matrix.IonChromatogram, error) {
	points, err := rawdata.ResolveWindowPoints(windowSpec, timeStep)
	if err != nil {
		return nil, err
	}
	if points < 2 {
		return nil, gcmserr.New(gcmserr.WindowTooSmall, "MovingWindowIC", "window must cover at least 2 points")
	}
	half := points / 2
	out := movingWindow(ic.Intensities, half, mode)
	return matrix.NewIonChromatogram(ic.Times, out, ic.Kind)
}

// MovingWindowIM applies the smoother to every column of an IntensityMatrix
// in place.
func MovingWindowIM(im *matrix.IntensityMatrix, windowSpec string, mode Mode, timeStep float64) error {
	points, err := rawdata.ResolveWindowPoints(windowSpec, timeStep)
	if err != nil {
		return err
	}
	if points < 2 {
		return gcmserr.New(gcmserr.WindowTooSmall, "MovingWindowIM", "window must cover at least 2 points")
	}
	half := points / 2
	for c := 0; c < im.Cols(); c++ {
		out := movingWindow(im.ColumnValues(c), half, mode)
		if err := im.SetColumn(c, out); err != nil {
			return err
		}
	}
	return nil
}
