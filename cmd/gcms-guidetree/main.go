// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The gcms-guidetree command reads a set of experiment checkpoint CSVs
// (RT, apex scan, and per-mass intensities, one file per experiment),
// computes the UPGMA guide tree used to order pairwise alignment merges,
// and writes it as a Graphviz DOT file.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strconv"

	"github.com/snowdonr/gcms/align"
	"github.com/snowdonr/gcms/experiment"
	"github.com/snowdonr/gcms/matrix"
	"github.com/snowdonr/gcms/peak"
)

func main() {
	var inputs sliceValue
	flag.Var(&inputs, "input", "specify an experiment peak-list CSV (required - may be present more than once)")
	d := flag.Float64("d", 2.5, "specify the retention-time match tolerance used for scoring")
	gap := flag.Float64("gap", 0.3, "specify the alignment gap penalty")
	out := flag.String("out", "guidetree.dot", "specify the output DOT file path")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s [options] -input <exp1.csv> [-input <exp2.csv> ...] -out guidetree.dot

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if len(inputs) < 2 {
		flag.Usage()
		os.Exit(2)
	}

	var alignments []*align.Alignment
	for _, path := range inputs {
		e, err := readExperimentCSV(path)
		if err != nil {
			log.Fatal(err)
		}
		alignments = append(alignments, align.FromExperiment(e))
	}

	sim, err := align.SimilarityMatrix(alignments, *d, *gap)
	if err != nil {
		log.Fatal(err)
	}
	tree, err := align.UPGMA(align.ToDistance(sim))
	if err != nil {
		log.Fatal(err)
	}

	doc, err := align.GuideTreeDOT(alignments, tree)
	if err != nil {
		log.Fatal(err)
	}
	err = ioutil.WriteFile(*out, doc, 0o664)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote guide tree for %d experiments to %s", len(inputs), *out)
}

// readExperimentCSV reads a peak-list file with header
// "rt,apex_scan,mass,intensity,...,mass,intensity" (repeating
// mass/intensity column pairs), one row per peak.
func readExperimentCSV(path string) (*experiment.Experiment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return experiment.New(baseName(path), nil), nil
	}

	var peaks []*peak.Peak
	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}
		rt, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, err
		}
		apex, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, err
		}
		var masses, intensities []float64
		for i := 2; i+1 < len(row); i += 2 {
			m, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				return nil, err
			}
			in, err := strconv.ParseFloat(row[i+1], 64)
			if err != nil {
				return nil, err
			}
			masses = append(masses, m)
			intensities = append(intensities, in)
		}
		spectrum, err := matrix.NewMassSpectrum(masses, intensities)
		if err != nil {
			return nil, err
		}
		peaks = append(peaks, peak.New(rt, spectrum, [3]int{apex, apex, apex}))
	}
	return experiment.New(baseName(path), peaks), nil
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}

// sliceValue is a multi-value flag value.
type sliceValue []string

func (s *sliceValue) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func (s *sliceValue) String() string {
	return fmt.Sprintf("%q", []string(*s))
}
