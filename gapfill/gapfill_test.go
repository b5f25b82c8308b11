// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gapfill

import (
	"testing"

	"github.com/snowdonr/gcms/align"
	"github.com/snowdonr/gcms/matrix"
	"github.com/snowdonr/gcms/peak"
	"github.com/snowdonr/gcms/rawdata"
	"github.com/stretchr/testify/require"
)

func buildRun(apexScan int, mass, apexHeight float64) *rawdata.RawData {
	times := make([]float64, 20)
	scans := make([]rawdata.Scan, 20)
	for i := range times {
		times[i] = float64(i)
		height := 1.0
		if i == apexScan {
			height = apexHeight
		}
		sc, err := rawdata.NewScan([]float64{mass}, []float64{height})
		if err != nil {
			panic(err)
		}
		scans[i] = sc
	}
	raw, err := rawdata.New(times, scans)
	if err != nil {
		panic(err)
	}
	return raw
}

func TestFillFindsNothingInFlatRun(t *testing.T) {
	rawA := buildRun(10, 100, 500)
	rawB := buildRun(10, 100, 1) // flat, no detected peak at position

	spectrum, err := matrix.NewMassSpectrum([]float64{100}, []float64{500})
	require.NoError(t, err)
	pA := peak.New(10, spectrum, [3]int{8, 10, 12})

	row := []*peak.Peak{pA, nil}
	a := &align.Alignment{
		ExprCodes: []string{"A", "B"},
		PeakAlgt:  [][]*peak.Peak{row},
	}

	opt := DefaultOptions()
	opt.QualifierRatio = 0.05
	found, err := Fill(a, []*rawdata.RawData{rawA, rawB}, matrix.BinningOptions{Integer: true}, opt)
	require.NoError(t, err)
	require.Empty(t, found) // flat run has no candidate clearing the qualifier threshold
}

func TestFillSkipsPositionsWithoutQualifierIon(t *testing.T) {
	raw := buildRun(10, 100, 500)
	a := &align.Alignment{
		ExprCodes: []string{"A"},
		PeakAlgt:  [][]*peak.Peak{{nil}},
	}
	found, err := Fill(a, []*rawdata.RawData{raw}, matrix.BinningOptions{Integer: true}, DefaultOptions())
	require.NoError(t, err)
	require.Empty(t, found)
}
