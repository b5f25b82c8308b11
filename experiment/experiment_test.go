// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package experiment

import (
	"testing"

	"github.com/snowdonr/gcms/peak"
	"github.com/stretchr/testify/require"
)

func TestSeleRTRangeStrictBounds(t *testing.T) {
	peaks := []*peak.Peak{
		peak.New(10, nil, [3]int{0, 0, 0}),
		peak.New(20, nil, [3]int{0, 0, 0}),
		peak.New(30, nil, [3]int{0, 0, 0}),
	}
	e := New("sample1", peaks)
	out, err := e.SeleRTRange("10s", "30s")
	require.NoError(t, err)
	require.Len(t, out.Peaks, 1)
	require.Equal(t, 20.0, out.Peaks[0].RT)
}

func TestSeleRTRangeRejectsInvertedBounds(t *testing.T) {
	e := New("sample1", nil)
	_, err := e.SeleRTRange("30s", "10s")
	require.Error(t, err)
}
