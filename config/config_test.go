// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRequiresTwoInputs(t *testing.T) {
	_, err := Parse([]string{"-input", "a.raw"})
	require.Error(t, err)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]string{"-input", "a.raw", "-input", "b.raw"})
	require.NoError(t, err)
	require.Equal(t, []string{"a.raw", "b.raw"}, cfg.Inputs)
	require.True(t, cfg.IntegerBins)
	require.Equal(t, "3s", cfg.SGWindow)
	require.Equal(t, 9, cfg.Points)
}

func TestParseOverridesWorkerCount(t *testing.T) {
	cfg, err := Parse([]string{"-input", "a.raw", "-input", "b.raw", "-workers", "4"})
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Workers)
}

func TestParseIntegrationDefaults(t *testing.T) {
	cfg, err := Parse([]string{"-input", "a.raw", "-input", "b.raw"})
	require.NoError(t, err)
	require.Equal(t, 1_000_000, cfg.MaxBound)
	require.Equal(t, 2.0, cfg.Tolerance)
}
