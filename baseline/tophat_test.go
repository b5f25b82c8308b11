// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package baseline

import (
	"testing"

	"github.com/snowdonr/gcms/matrix"
	"github.com/stretchr/testify/require"
)

func TestTopHatFlattensRamp(t *testing.T) {
	n := 40
	times := make([]float64, n)
	intensities := make([]float64, n)
	for i := range times {
		times[i] = float64(i)
		intensities[i] = float64(i) // strictly increasing ramp
	}
	ic, err := matrix.NewIonChromatogram(times, intensities, matrix.TIC{})
	require.NoError(t, err)

	out, err := TopHatIC(ic, "9", 1)
	require.NoError(t, err)

	// away from the ends the opening tracks the ramp closely, so the
	// corrected chromatogram stays near zero.
	for i := 10; i < n-10; i++ {
		require.InDelta(t, 0, out.Intensities[i], 1.0)
	}
}
