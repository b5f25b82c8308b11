// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package smooth provides the Savitzky-Golay and moving-window filters
// applied to ion chromatograms and, column-wise, to intensity matrices.
package smooth

import (
	"github.com/snowdonr/gcms/gcmserr"
	"github.com/snowdonr/gcms/matrix"
	"github.com/snowdonr/gcms/rawdata"
	"gonum.org/v1/gonum/mat"
)

// sgCoefficients computes the length-(2*half+1) convolution kernel for a
// degree-d polynomial least-squares smoother by solving the normal
// equations of the Vandermonde design matrix via Cholesky decomposition,
// then reading off the row of (AᵀA)⁻¹ corresponding to the 0th derivative.
func sgCoefficients(half, degree int) ([]float64, error) {
	points := 2*half + 1
	if points < degree+1 {
		return nil, gcmserr.New(gcmserr.WindowTooSmall, "sgCoefficients", "window smaller than degree+1")
	}

	a := mat.NewDense(points, degree+1, nil)
	for i := 0; i < points; i++ {
		x := float64(i - half)
		p := 1.0
		for j := 0; j <= degree; j++ {
			a.Set(i, j, p)
			p *= x
		}
	}

	sym := mat.NewSymDense(degree+1, nil)
	for i := 0; i <= degree; i++ {
		for j := i; j <= degree; j++ {
			v := 0.0
			for k := 0; k < points; k++ {
				v += a.At(k, i) * a.At(k, j)
			}
			sym.SetSym(i, j, v)
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, gcmserr.New(gcmserr.WindowTooSmall, "sgCoefficients", "normal equations are not positive definite")
	}
	var inv mat.Dense
	if err := chol.InverseTo(&inv); err != nil {
		return nil, gcmserr.Wrap(gcmserr.WindowTooSmall, "sgCoefficients", err)
	}

	coeff := make([]float64, points)
	for k := 0; k < points; k++ {
		s := 0.0
		for j := 0; j <= degree; j++ {
			s += inv.At(0, j) * a.At(k, j)
		}
		coeff[k] = s
	}
	return coeff, nil
}

// convolveTrim convolves y with coeff (full convolution, length
// len(y)+len(coeff)-1) then trims len(coeff)/2 samples from each end,
// mirroring the source's convolve-then-slice behavior.
func convolveTrim(y, coeff []float64) []float64 {
	n, p := len(y), len(coeff)
	full := make([]float64, n+p-1)
	for i, yv := range y {
		for j, c := range coeff {
			full[i+j] += yv * c
		}
	}
	size := p / 2
	return append([]float64(nil), full[size:size+n]...)
}

// SavitzkyGolayIC smooths one ion chromatogram.
func SavitzkyGolayIC(ic *matrix.IonChromatogram, windowSpec string, degree int, timeStep float64) (*matrix.IonChromatogram, error) {
	points, err := rawdata.ResolveWindowPoints(windowSpec, timeStep)
	if err != nil {
		return nil, err
	}
	if points%2 == 0 {
		points--
	}
	half := (points - 1) / 2
	if half < 1 {
		return nil, gcmserr.New(gcmserr.WindowTooSmall, "SavitzkyGolayIC", "half-window must be at least 1")
	}
	coeff, err := sgCoefficients(half, degree)
	if err != nil {
		return nil, err
	}
	out := convolveTrim(ic.Intensities, coeff)
	return matrix.NewIonChromatogram(ic.Times, out, ic.Kind)
}

// SavitzkyGolayIM smooths every column of an IntensityMatrix in place.
func SavitzkyGolayIM(im *matrix.IntensityMatrix, windowSpec string, degree int, timeStep float64) error {
	points, err := rawdata.ResolveWindowPoints(windowSpec, timeStep)
	if err != nil {
		return err
	}
	if points%2 == 0 {
		points--
	}
	half := (points - 1) / 2
	if half < 1 {
		return gcmserr.New(gcmserr.WindowTooSmall, "SavitzkyGolayIM", "half-window must be at least 1")
	}
	coeff, err := sgCoefficients(half, degree)
	if err != nil {
		return err
	}
	for c := 0; c < im.Cols(); c++ {
		col := im.ColumnValues(c)
		smoothed := convolveTrim(col, coeff)
		if err := im.SetColumn(c, smoothed); err != nil {
			return err
		}
	}
	return nil
}
