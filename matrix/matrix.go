// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matrix

import (
	"math"

	"github.com/snowdonr/gcms/gcmserr"
	"gonum.org/v1/gonum/mat"
)

// IntensityMatrix is a dense S x M matrix of intensities: S scans (rows)
// and M mass bins (columns), backed by a gonum mat.Dense so that smoothing
// and baseline kernels can operate on plain []float64 row/column views.
type IntensityMatrix struct {
	data   *mat.Dense
	times  []float64
	masses []float64
}

// NewIntensityMatrix builds an IntensityMatrix directly from a populated
// mat.Dense, a time vector and a mass vector. Used by binning and by tests;
// general callers should use Build.
func NewIntensityMatrix(data *mat.Dense, times, masses []float64) (*IntensityMatrix, error) {
	r, c := data.Dims()
	if r != len(times) {
		return nil, gcmserr.New(gcmserr.ShapeMismatch, "NewIntensityMatrix", "row count does not match time vector")
	}
	if c != len(masses) {
		return nil, gcmserr.New(gcmserr.ShapeMismatch, "NewIntensityMatrix", "column count does not match mass vector")
	}
	for i := 1; i < len(masses); i++ {
		if masses[i] <= masses[i-1] {
			return nil, gcmserr.New(gcmserr.InvalidArgument, "NewIntensityMatrix", "mass list must be strictly increasing")
		}
	}
	return &IntensityMatrix{data: data, times: times, masses: masses}, nil
}

func (im *IntensityMatrix) Rows() int           { r, _ := im.data.Dims(); return r }
func (im *IntensityMatrix) Cols() int           { _, c := im.data.Dims(); return c }
func (im *IntensityMatrix) Times() []float64    { return im.times }
func (im *IntensityMatrix) Masses() []float64   { return im.masses }
func (im *IntensityMatrix) At(r, c int) float64 { return im.data.At(r, c) }
func (im *IntensityMatrix) Set(r, c int, v float64) { im.data.Set(r, c, v) }

// ColumnValues returns a copy of column c's values.
func (im *IntensityMatrix) ColumnValues(c int) []float64 {
	rows := im.Rows()
	out := make([]float64, rows)
	for r := 0; r < rows; r++ {
		out[r] = im.data.At(r, c)
	}
	return out
}

// SetColumn overwrites column c.
func (im *IntensityMatrix) SetColumn(c int, values []float64) error {
	if len(values) != im.Rows() {
		return gcmserr.New(gcmserr.ShapeMismatch, "SetColumn", "value count does not match row count")
	}
	for r, v := range values {
		im.data.Set(r, c, v)
	}
	return nil
}

// RowValues returns a copy of row r's values.
func (im *IntensityMatrix) RowValues(r int) []float64 {
	cols := im.Cols()
	out := make([]float64, cols)
	for c := 0; c < cols; c++ {
		out[c] = im.data.At(r, c)
	}
	return out
}

// Row returns a MassSpectrum view of row r.
func (im *IntensityMatrix) Row(r int) (*MassSpectrum, error) {
	if r < 0 || r >= im.Rows() {
		return nil, gcmserr.New(gcmserr.IndexOutOfRange, "Row", "row index out of range")
	}
	return NewMassSpectrum(append([]float64(nil), im.masses...), im.RowValues(r))
}

// Column returns an IonChromatogram view of column c, tagged with kind.
func (im *IntensityMatrix) Column(c int, kind ChromatogramKind) (*IonChromatogram, error) {
	if c < 0 || c >= im.Cols() {
		return nil, gcmserr.New(gcmserr.IndexOutOfRange, "Column", "column index out of range")
	}
	return NewIonChromatogram(append([]float64(nil), im.times...), im.ColumnValues(c), kind)
}

// ColumnIndexForMass returns the index of the column whose mass is nearest
// to mass.
func (im *IntensityMatrix) ColumnIndexForMass(mass float64) int {
	best, bestDelta := 0, math.Abs(im.masses[0]-mass)
	for i, m := range im.masses {
		if d := math.Abs(m - mass); d < bestDelta {
			best, bestDelta = i, d
		}
	}
	return best
}

// CropMass deletes columns whose mass lies outside [lo, hi].
func (im *IntensityMatrix) CropMass(lo, hi float64) error {
	if lo >= hi {
		return gcmserr.New(gcmserr.InvalidArgument, "CropMass", "lo must be < hi")
	}
	var keep []int
	for i, m := range im.masses {
		if m >= lo && m <= hi {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return gcmserr.New(gcmserr.InvalidArgument, "CropMass", "no masses in range")
	}
	newMasses := make([]float64, len(keep))
	newData := mat.NewDense(im.Rows(), len(keep), nil)
	for j, c := range keep {
		newMasses[j] = im.masses[c]
		for r := 0; r < im.Rows(); r++ {
			newData.Set(r, j, im.data.At(r, c))
		}
	}
	im.masses = newMasses
	im.data = newData
	return nil
}

// NullMass zeros the column nearest to mass.
func (im *IntensityMatrix) NullMass(mass float64) error {
	c := im.ColumnIndexForMass(mass)
	for r := 0; r < im.Rows(); r++ {
		im.data.Set(r, c, 0)
	}
	return nil
}
