// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matrix

import (
	"math"

	"github.com/snowdonr/gcms/gcmserr"
	"github.com/snowdonr/gcms/rawdata"
	"gonum.org/v1/gonum/mat"
)

// BinningOptions configures Build. Integer selects the fixed integer-bin
// mode (bin_interval=1, bin_left=0.3, bin_right=0.7); when set, BinInterval,
// BinLeft and BinRight are ignored. MinMass overrides the default minimum
// mass (RawData's observed minimum for float bins; the integer-bin formula
// below for integer bins).
type BinningOptions struct {
	BinInterval float64
	BinLeft     float64
	BinRight    float64
	MinMass     *float64
	Integer     bool
}

// Build bins a RawData run into a dense IntensityMatrix.
func Build(raw *rawdata.RawData, opt BinningOptions) (*IntensityMatrix, error) {
	interval, left, right := opt.BinInterval, opt.BinLeft, opt.BinRight
	if opt.Integer {
		interval, left, right = 1, 0.3, 0.7
	}
	if interval <= 0 {
		return nil, gcmserr.New(gcmserr.InvalidArgument, "Build", "bin_interval must be positive")
	}
	if math.Abs(left+right-interval) > 1e-6*interval {
		return nil, gcmserr.New(gcmserr.InvalidArgument, "Build", "bin widths must sum to bin_interval")
	}

	minMass := raw.MinMass()
	if opt.Integer {
		minMass = math.Floor(raw.MinMass() + 1 - right)
	}
	if opt.MinMass != nil {
		minMass = *opt.MinMass
	}

	bl := left - math.Floor(left)
	maxMass := raw.MaxMass()
	numBins := int(math.Floor((maxMass+bl-minMass)/interval)) + 1
	if numBins < 1 {
		numBins = 1
	}

	masses := make([]float64, numBins)
	for k := range masses {
		masses[k] = minMass + float64(k)*interval
	}

	data := mat.NewDense(len(raw.Scans), numBins, nil)
	for i, sc := range raw.Scans {
		for j, m := range sc.Masses {
			mm := int(math.Floor((m + bl - minMass) / interval))
			if mm < 0 || mm >= numBins {
				continue
			}
			data.Set(i, mm, data.At(i, mm)+sc.Intensities[j])
		}
	}

	return NewIntensityMatrix(data, append([]float64(nil), raw.Times...), masses)
}
