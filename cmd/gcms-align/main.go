// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The gcms-align command runs the full GC-MS alignment pipeline: it
// bins each input run into an intensity matrix, smooths and
// baseline-corrects it, detects and filters peaks, builds a guide
// tree, merges every run's peak list into one alignment, reintegrates
// missing peaks, and writes retention-time, area and common-ion CSV
// tables.
//
// gcms-align ships no vendor file-format parser; callers register one
// against rawdata.Loader under the name given in the GCMS_LOADER
// environment variable (see RegisterLoader).
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/snowdonr/gcms/align"
	"github.com/snowdonr/gcms/baseline"
	"github.com/snowdonr/gcms/config"
	"github.com/snowdonr/gcms/experiment"
	"github.com/snowdonr/gcms/gapfill"
	"github.com/snowdonr/gcms/matrix"
	"github.com/snowdonr/gcms/peak"
	"github.com/snowdonr/gcms/rawdata"
	"github.com/snowdonr/gcms/smooth"
	"modernc.org/kv"

	gcmsstore "github.com/snowdonr/gcms/internal/store"
)

// loaders holds the raw-data format parsers available to this binary.
// None is registered by default; link in a parser package that calls
// RegisterLoader from an init function to add one.
var loaders = map[string]rawdata.Loader{}

// RegisterLoader makes a rawdata.Loader available under name for the
// GCMS_LOADER environment variable.
func RegisterLoader(name string, l rawdata.Loader) {
	loaders[name] = l
}

func main() {
	cfg, err := config.Parse(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	var logger *log.Logger
	if cfg.Verbose {
		logger = log.New(os.Stderr, "gcms-align: ", log.LstdFlags)
	} else {
		logger = log.New(os.Stderr, "", 0)
	}

	loaderName := os.Getenv("GCMS_LOADER")
	loader, ok := loaders[loaderName]
	if !ok {
		log.Fatalf("no rawdata.Loader registered under %q; link a parser package and set GCMS_LOADER", loaderName)
	}

	experiments, raws, err := loadExperiments(cfg, loader, logger)
	if err != nil {
		log.Fatal(err)
	}

	alignments := align.ExprListToAlignments(experiments)

	var auditDB *kv.DB
	if cfg.AuditDBPath != "" {
		opts := &kv.Options{Compare: gcmsstore.ByPairOrder}
		db, err := kv.Create(cfg.AuditDBPath, opts)
		if err != nil {
			log.Fatal(err)
		}
		auditDB = db
		defer auditDB.Close()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() - 3
		if workers < 2 {
			workers = 2
		}
	}

	sim, err := align.RunSimilarityPool(context.Background(), alignments, cfg.DMatch, cfg.GapCost, align.PoolOptions{
		Workers:        workers,
		CheckpointPath: cfg.CheckpointPath,
		AuditDB:        auditDB,
	})
	if err != nil {
		log.Fatal(err)
	}

	tree, err := align.UPGMA(align.ToDistance(sim))
	if err != nil {
		log.Fatal(err)
	}
	final, err := align.AlignWithTree(alignments, tree, cfg.DMatch, cfg.GapCost, cfg.MinPeaks)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.GapFill {
		binOpt := matrix.BinningOptions{Integer: cfg.IntegerBins, BinInterval: cfg.BinInterval, BinLeft: cfg.BinLeft, BinRight: cfg.BinRight}
		// the guide-tree merge reorders experiment codes, so line the raw
		// data up with final.ExprCodes before filling.
		rawByCode := make(map[string]*rawdata.RawData, len(raws))
		for i, e := range experiments {
			rawByCode[e.Code] = raws[i]
		}
		ordered := make([]*rawdata.RawData, len(final.ExprCodes))
		for i, code := range final.ExprCodes {
			ordered[i] = rawByCode[code]
		}
		found, err := gapfill.Fill(final, ordered, binOpt, gapfill.DefaultOptions())
		if err != nil {
			logger.Printf("gap fill failed: %v", err)
		} else {
			for _, f := range found {
				final.PeakAlgt[f.Position][f.Experiment] = f.Peak
			}
			logger.Printf("gap fill recovered %d peaks", len(found))
		}
	}

	if err := writeTables(final, "."); err != nil {
		log.Fatal(err)
	}
}

func loadExperiments(cfg config.Config, loader rawdata.Loader, logger *log.Logger) ([]*experiment.Experiment, []*rawdata.RawData, error) {
	binOpt := matrix.BinningOptions{Integer: cfg.IntegerBins, BinInterval: cfg.BinInterval, BinLeft: cfg.BinLeft, BinRight: cfg.BinRight}

	var experiments []*experiment.Experiment
	var raws []*rawdata.RawData
	for _, path := range cfg.Inputs {
		logger.Printf("loading %s", path)
		raw, err := loader.Load(path)
		if err != nil {
			return nil, nil, err
		}
		raws = append(raws, raw)

		im, err := matrix.Build(raw, binOpt)
		if err != nil {
			return nil, nil, err
		}
		timeStep, _ := raw.TimeStep()

		if err := smooth.SavitzkyGolayIM(im, cfg.SGWindow, cfg.SGDegree, timeStep); err != nil {
			return nil, nil, err
		}
		if err := baseline.TopHatIM(im, cfg.TopHat, timeStep); err != nil {
			return nil, nil, err
		}

		peaks, err := peak.BillerBiemann(im, cfg.Points, cfg.Scans)
		if err != nil {
			return nil, nil, err
		}
		for _, p := range peaks {
			if err := peak.PeakSumArea(im, p, cfg.MaxBound, cfg.Tolerance); err != nil {
				return nil, nil, err
			}
		}
		peaks, err = peak.RelThreshold(peaks, 1)
		if err != nil {
			return nil, nil, err
		}
		peaks = peak.CullOverlapping(peaks)

		code := filepath.Base(path)
		e := experiment.New(code, peaks)
		e, err = e.SeleRTRange(cfg.RTLo, cfg.RTHi)
		if err != nil {
			return nil, nil, err
		}
		experiments = append(experiments, e)
	}
	return experiments, raws, nil
}

func writeTables(a *align.Alignment, dir string) error {
	rt, err := os.Create(filepath.Join(dir, "rt_table.csv"))
	if err != nil {
		return err
	}
	defer rt.Close()
	if err := a.WriteRTTableCSV(rt); err != nil {
		return err
	}

	area, err := os.Create(filepath.Join(dir, "area_table.csv"))
	if err != nil {
		return err
	}
	defer area.Close()
	if err := a.WriteAreaTableCSV(area); err != nil {
		return err
	}

	ion, err := os.Create(filepath.Join(dir, "common_ion_table.csv"))
	if err != nil {
		return err
	}
	defer ion.Close()
	if err := a.WriteCommonIonTableCSV(ion); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "wrote %s, %s, %s\n",
		filepath.Join(dir, "rt_table.csv"),
		filepath.Join(dir, "area_table.csv"),
		filepath.Join(dir, "common_ion_table.csv"))
	return nil
}
