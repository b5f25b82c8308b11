// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config parses the gcms-align command-line configuration:
// binning parameters, smoothing windows, worker count and checkpoint
// path. Sparse-mode pair restrictions (align.PoolOptions.Whitelist) are
// not configurable through these flags.
package config

import (
	"flag"
	"fmt"
	"os"
)

// Config holds every tunable of the alignment pipeline.
type Config struct {
	Inputs []string

	BinInterval float64
	BinLeft     float64
	BinRight    float64
	IntegerBins bool

	SGWindow string
	SGDegree int
	TopHat   string

	Points int
	Scans  int

	RTLo, RTHi string

	DMatch   float64
	GapCost  float64
	MinPeaks int

	MaxBound  int
	Tolerance float64

	Workers        int
	CheckpointPath string
	AuditDBPath    string

	GapFill bool

	Verbose bool
}

// sliceValue is a multi-value flag collecting repeated -input flags.
type sliceValue []string

func (s *sliceValue) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func (s *sliceValue) String() string {
	return fmt.Sprintf("%q", []string(*s))
}

// Parse parses args (typically os.Args[1:]) into a Config.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("gcms-align", flag.ContinueOnError)

	var inputs sliceValue
	fs.Var(&inputs, "input", "specify an input raw-data file (required - may be present more than once)")

	binInterval := fs.Float64("bin-interval", 1, "specify the mass-bin width")
	binLeft := fs.Float64("bin-left", 0.3, "specify the left bin boundary share")
	binRight := fs.Float64("bin-right", 0.7, "specify the right bin boundary share")
	integerBins := fs.Bool("integer-bins", true, "specify fixed integer mass binning")

	sgWindow := fs.String("sg-window", "3s", "specify the Savitzky-Golay smoothing window")
	sgDegree := fs.Int("sg-degree", 2, "specify the Savitzky-Golay polynomial degree")
	topHat := fs.String("top-hat", "1.5m", "specify the top-hat structuring element size")

	points := fs.Int("points", 9, "specify the Biller-Biemann local-maxima window width in points")
	scans := fs.Int("scans", 2, "specify the Biller-Biemann row-coalescing block width in scans")

	rtLo := fs.String("rt-lo", "0s", "specify the lower retention-time selection bound")
	rtHi := fs.String("rt-hi", "1000m", "specify the upper retention-time selection bound")

	dMatch := fs.Float64("d", 2.5, "specify the retention-time match tolerance used for scoring")
	gapCost := fs.Float64("gap", 0.3, "specify the alignment gap penalty")
	minPeaks := fs.Int("min-peaks", 1, "specify the minimum number of experiments a position must appear in to be kept")

	maxBound := fs.Int("max-bound", 1_000_000, "specify the maximum number of scans to expand from a peak apex when integrating area")
	tolerance := fs.Float64("tol", 2, "specify the noise-floor tolerance percentage used when integrating area")

	workers := fs.Int("workers", 0, "specify the number of similarity-computation workers (<=0 is the number of cores minus 3, at least 2)")
	checkpoint := fs.String("checkpoint", "", "specify a path to a similarity-computation checkpoint file")
	auditDB := fs.String("audit-db", "", "specify a path to a kv audit database for pairwise similarity results")

	gapFill := fs.Bool("gap-fill", true, "specify whether to reintegrate missing peaks after alignment")

	verbose := fs.Bool("verbose", false, "specify verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `Usage of %[1]s:
  $ %[1]s [options] -input <run1.raw> [-input <run2.raw> ...] 2>out.log

Options:
`, os.Args[0])
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if len(inputs) < 2 {
		fs.Usage()
		return Config{}, fmt.Errorf("at least two -input files are required")
	}

	return Config{
		Inputs:         inputs,
		BinInterval:    *binInterval,
		BinLeft:        *binLeft,
		BinRight:       *binRight,
		IntegerBins:    *integerBins,
		SGWindow:       *sgWindow,
		SGDegree:       *sgDegree,
		TopHat:         *topHat,
		Points:         *points,
		Scans:          *scans,
		RTLo:           *rtLo,
		RTHi:           *rtHi,
		DMatch:         *dMatch,
		GapCost:        *gapCost,
		MinPeaks:       *minPeaks,
		MaxBound:       *maxBound,
		Tolerance:      *tolerance,
		Workers:        *workers,
		CheckpointPath: *checkpoint,
		AuditDBPath:    *auditDB,
		GapFill:        *gapFill,
		Verbose:        *verbose,
	}, nil
}
