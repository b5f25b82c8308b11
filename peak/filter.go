// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package peak

import (
	"math/rand"
	"sort"

	"github.com/snowdonr/gcms/gcmserr"
	"gonum.org/v1/gonum/floats"
)

// RelThreshold zeros, per peak, any spectrum intensity below
// max(intensities)/100*percent and recomputes the UID. percent must be
// positive.
func RelThreshold(peaks []*Peak, percent float64) ([]*Peak, error) {
	if percent <= 0 {
		return nil, gcmserr.New(gcmserr.InvalidArgument, "RelThreshold", "percent must be positive")
	}
	out := make([]*Peak, len(peaks))
	for i, p := range peaks {
		np := p.Clone()
		if np.Spectrum != nil && len(np.Spectrum.Intensities) > 0 {
			cutoff := floats.Max(np.Spectrum.Intensities) / 100 * percent
			for j, v := range np.Spectrum.Intensities {
				if v < cutoff {
					np.Spectrum.Intensities[j] = 0
				}
			}
			np.updateUID()
		}
		out[i] = np
	}
	return out, nil
}

// IonCountThreshold keeps peaks whose count of spectrum intensities at or
// above cutoff is at least n. Applying it twice with the same parameters
// is idempotent: peaks already kept stay unmutated.
func IonCountThreshold(peaks []*Peak, cutoff float64, n int) []*Peak {
	var out []*Peak
	for _, p := range peaks {
		if p.Spectrum == nil {
			continue
		}
		count := 0
		for _, v := range p.Spectrum.Intensities {
			if v >= cutoff {
				count++
			}
		}
		if count >= n {
			out = append(out, p)
		}
	}
	return out
}

// WindowAnalyzer estimates a data-driven noise floor: it samples nWindows
// random windows of windowPts points from tic and returns the minimum
// median absolute deviation across them.
func WindowAnalyzer(tic []float64, nWindows, windowPts int, seed int64) float64 {
	if len(tic) < windowPts || windowPts < 1 {
		return 0
	}
	rng := rand.New(rand.NewSource(seed))
	best := 0.0
	haveBest := false
	for i := 0; i < nWindows; i++ {
		start := rng.Intn(len(tic) - windowPts + 1)
		m := mad(tic[start : start+windowPts])
		if !haveBest || m < best {
			best, haveBest = m, true
		}
	}
	return best
}

func mad(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	med := median(sorted)
	devs := make([]float64, len(xs))
	for i, v := range xs {
		d := v - med
		if d < 0 {
			d = -d
		}
		devs[i] = d
	}
	sort.Float64s(devs)
	return median(devs)
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
