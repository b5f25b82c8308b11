// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package baseline implements the white top-hat baseline correction used
// to remove slow-varying background from ion chromatograms.
package baseline

import (
	"math"

	"github.com/snowdonr/gcms/gcmserr"
	"github.com/snowdonr/gcms/matrix"
	"github.com/snowdonr/gcms/rawdata"
)

func erode(y []float64, half int) []float64 {
	out := make([]float64, len(y))
	for i := range y {
		lo, hi := i-half, i+half+1
		if lo < 0 {
			lo = 0
		}
		if hi > len(y) {
			hi = len(y)
		}
		m := y[lo]
		for _, v := range y[lo:hi] {
			if v < m {
				m = v
			}
		}
		out[i] = m
	}
	return out
}

func dilate(y []float64, half int) []float64 {
	out := make([]float64, len(y))
	for i := range y {
		lo, hi := i-half, i+half+1
		if lo < 0 {
			lo = 0
		}
		if hi > len(y) {
			hi = len(y)
		}
		m := y[lo]
		for _, v := range y[lo:hi] {
			if v > m {
				m = v
			}
		}
		out[i] = m
	}
	return out
}

// opening is morphological erosion followed by dilation with a flat
// structuring element of half-width half.
func opening(y []float64, half int) []float64 {
	return dilate(erode(y, half), half)
}

func structSize(spec string, n int, timeStep float64) (int, error) {
	if spec == "" {
		return int(math.Round(0.2 * float64(n))), nil
	}
	return rawdata.ResolveWindowPoints(spec, timeStep)
}

// TopHatIC applies white top-hat baseline correction to one ion
// chromatogram: output is y minus the morphological opening of y.
func TopHatIC(ic *matrix.IonChromatogram, structSpec string, timeStep float64) (*matrix.IonChromatogram, error) {
	size, err := structSize(structSpec, len(ic.Intensities), timeStep)
	if err != nil {
		return nil, err
	}
	if size < 1 {
		return nil, gcmserr.New(gcmserr.WindowTooSmall, "TopHatIC", "structuring element must cover at least 1 point")
	}
	half := size / 2
	opened := opening(ic.Intensities, half)
	out := make([]float64, len(ic.Intensities))
	for i := range out {
		out[i] = ic.Intensities[i] - opened[i]
	}
	return matrix.NewIonChromatogram(ic.Times, out, ic.Kind)
}

// TopHatIM applies the correction to every column of an IntensityMatrix in
// place.
func TopHatIM(im *matrix.IntensityMatrix, structSpec string, timeStep float64) error {
	size, err := structSize(structSpec, im.Rows(), timeStep)
	if err != nil {
		return err
	}
	if size < 1 {
		return gcmserr.New(gcmserr.WindowTooSmall, "TopHatIM", "structuring element must cover at least 1 point")
	}
	half := size / 2
	for c := 0; c < im.Cols(); c++ {
		col := im.ColumnValues(c)
		opened := opening(col, half)
		out := make([]float64, len(col))
		for i := range out {
			out[i] = col[i] - opened[i]
		}
		if err := im.SetColumn(c, out); err != nil {
			return err
		}
	}
	return nil
}
