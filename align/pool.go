// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/snowdonr/gcms/internal/store"
	"modernc.org/kv"
)

// PairJob is one pairwise similarity task for the worker pool.
type PairJob struct {
	I, J int
}

// PairResult is the outcome of one PairJob.
type PairResult struct {
	I, J       int
	Similarity float64
}

// PoolOptions configures the parallel similarity sweep.
type PoolOptions struct {
	Workers        int
	CheckpointPath string
	AuditDB        *kv.DB
	// Whitelist, when non-empty, restricts the sweep to exactly these
	// pairs (sparse mode); otherwise every i<j pair over n items runs.
	Whitelist []PairJob
}

// RunSimilarityPool computes pairwise similarities among n alignments
// concurrently across opt.Workers goroutines, resuming from any
// checkpoint found at opt.CheckpointPath and appending newly computed
// results to it as they complete. Results already present in the
// checkpoint are not recomputed.
func RunSimilarityPool(ctx context.Context, alignments []*Alignment, d, gap float64, opt PoolOptions) ([][]float64, error) {
	n := len(alignments)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}

	done := make(map[PairJob]bool)
	if opt.CheckpointPath != "" {
		if err := loadCheckpoint(opt.CheckpointPath, m, done); err != nil {
			return nil, err
		}
	}

	jobs := opt.Whitelist
	if len(jobs) == 0 {
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				jobs = append(jobs, PairJob{I: i, J: j})
			}
		}
	}
	var pending []PairJob
	for _, j := range jobs {
		if !done[j] {
			pending = append(pending, j)
		}
	}

	workers := opt.Workers
	if workers <= 0 {
		workers = 1
	}

	jobCh := make(chan PairJob)
	resultCh := make(chan PairResult)
	errCh := make(chan error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				select {
				case <-ctx.Done():
					return
				default:
				}
				merged, err := Align(alignments[job.I], alignments[job.J], d, gap)
				if err != nil {
					select {
					case errCh <- err:
					default:
					}
					continue
				}
				select {
				case resultCh <- PairResult{I: job.I, J: job.J, Similarity: merged.Similarity}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobCh)
		for _, j := range pending {
			select {
			case jobCh <- j:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	var cpFile *os.File
	var cpWriter *bufio.Writer
	if opt.CheckpointPath != "" {
		f, err := os.OpenFile(opt.CheckpointPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		cpFile = f
		cpWriter = bufio.NewWriter(f)
		defer func() {
			cpWriter.Flush()
			cpFile.Close()
		}()
	}

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case res, ok := <-resultCh:
			if !ok {
				if cpWriter != nil {
					cpWriter.Flush()
				}
				select {
				case err := <-errCh:
					return nil, err
				default:
					return m, nil
				}
			}
			m[res.I][res.J] = res.Similarity
			m[res.J][res.I] = res.Similarity
			if cpWriter != nil {
				fmt.Fprintf(cpWriter, "%d : %d : %g\n", res.I, res.J, res.Similarity)
			}
			if opt.AuditDB != nil {
				key := store.MarshalPairKey(res.I, res.J)
				if err := opt.AuditDB.Set(key, store.MarshalFloat(res.Similarity)); err != nil {
					log.Printf("audit store write failed for (%d,%d): %v", res.I, res.J, err)
				}
			}
		case <-ticker.C:
			log.Printf("similarity pool alive, %d workers", workers)
		case <-ctx.Done():
			if cpWriter != nil {
				cpWriter.Flush()
			}
			return nil, ctx.Err()
		}
	}
}

// loadCheckpoint parses a text checkpoint of "i : j : similarity" lines
// into m and done, skipping malformed lines with a warning.
func loadCheckpoint(path string, m [][]float64, done map[PairJob]bool) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) != 3 {
			log.Printf("skipping malformed checkpoint line: %q", line)
			continue
		}
		i, errI := strconv.Atoi(strings.TrimSpace(fields[0]))
		j, errJ := strconv.Atoi(strings.TrimSpace(fields[1]))
		v, errV := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
		if errI != nil || errJ != nil || errV != nil {
			log.Printf("skipping malformed checkpoint line: %q", line)
			continue
		}
		if i < 0 || j < 0 || i >= len(m) || j >= len(m) {
			log.Printf("skipping out-of-range checkpoint line: %q", line)
			continue
		}
		m[i][j] = v
		m[j][i] = v
		done[PairJob{I: i, J: j}] = true
	}
	return sc.Err()
}
