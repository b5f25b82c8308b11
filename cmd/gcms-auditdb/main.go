// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The gcms-auditdb command inspects the kv audit database and text
// checkpoint file written by gcms-align during its parallel pairwise
// similarity sweep. Output is a JSON stream of {i, j, similarity}
// records on stdout, plus, when a checkpoint file is read, a per-leaf
// coverage summary on stderr.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/snowdonr/gcms/internal/store"
	"github.com/biogo/store/step"
	"modernc.org/kv"
)

func main() {
	dbPath := flag.String("db", "", "specify the kv audit database to read")
	checkpointPath := flag.String("checkpoint", "", "specify a text checkpoint file to read (after -db when both are given)")
	flag.Parse()

	if *dbPath == "" && *checkpointPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	enc := json.NewEncoder(os.Stdout)

	if *dbPath != "" {
		if err := auditDB(*dbPath, enc); err != nil {
			log.Fatal(err)
		}
	}
	if *checkpointPath != "" {
		if err := auditCheckpoint(*checkpointPath, enc); err != nil {
			log.Fatal(err)
		}
	}
}

type record struct {
	I          int64   `json:"i"`
	J          int64   `json:"j"`
	Similarity float64 `json:"similarity"`
}

func auditDB(path string, enc *json.Encoder) error {
	opts := &kv.Options{Compare: store.ByPairOrder}
	db, err := kv.Open(path, opts)
	if err != nil {
		return err
	}
	defer db.Close()

	it, err := db.SeekFirst()
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	for {
		k, v, err := it.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		key := store.UnmarshalPairKey(k)
		err = enc.Encode(record{I: key.I, J: key.J, Similarity: store.UnmarshalFloat(v)})
		if err != nil {
			return err
		}
	}
	return nil
}

func auditCheckpoint(path string, enc *json.Encoder) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	// coverage tracks how many checkpoint lines reference each leaf
	// index, a quick diagnostic for whether the sweep covered every
	// alignment roughly evenly.
	coverage, err := step.New(0, 1, count(0))
	if err != nil {
		return err
	}
	coverage.Relaxed = true

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
		if err := enc.Encode(record{I: int64(i), J: int64(j), Similarity: v}); err != nil {
			return err
		}

		for _, leaf := range []int{i, j} {
			err = coverage.ApplyRange(leaf, leaf+1, func(e step.Equaler) step.Equaler {
				return e.(count) + 1
			})
			if err != nil {
				return err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}

	coverage.Do(func(start, end int, e step.Equaler) {
		fmt.Fprintf(os.Stderr, "leaves [%d,%d): %d checkpoint references\n", start, end, e.(count))
	})
	return nil
}

// count is a step.Equaler wrapping a reference tally.
type count int

func (c count) Equal(e step.Equaler) bool { return c == e.(count) }
