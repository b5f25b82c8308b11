// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import (
	"math"

	"github.com/snowdonr/gcms/gcmserr"
	"github.com/snowdonr/gcms/peak"
)

const similarityTol = 1e-3

// PositionSimilarity scores one alignment position against another: 0 is
// best, 1 is worst. Every non-null peak pair combining a spectral cosine
// with a Gaussian retention-time weight of scale d contributes
// 1 - cos*w, or the worst score 1.0 when the RT delta exceeds the cutoff
// implied by d, or either spectrum is all-zero.
func PositionSimilarity(posA, posB []*peak.Peak, d float64) (float64, error) {
	cutoff := d * math.Sqrt(-2*math.Log(similarityTol))
	sum, count := 0.0, 0
	for _, a := range posA {
		if a == nil || a.Spectrum == nil {
			continue
		}
		for _, b := range posB {
			if b == nil || b.Spectrum == nil {
				continue
			}
			if len(a.Spectrum.MassList) != len(b.Spectrum.MassList) {
				return 0, gcmserr.New(gcmserr.ShapeMismatch, "PositionSimilarity", "spectra mass-list length mismatch")
			}
			count++
			if math.Abs(a.RT-b.RT) > cutoff {
				sum += 1.0
				continue
			}
			dot, na, nb := 0.0, 0.0, 0.0
			for i := range a.Spectrum.Intensities {
				dot += a.Spectrum.Intensities[i] * b.Spectrum.Intensities[i]
				na += a.Spectrum.Intensities[i] * a.Spectrum.Intensities[i]
				nb += b.Spectrum.Intensities[i] * b.Spectrum.Intensities[i]
			}
			if na*nb == 0 {
				sum += 1.0
				continue
			}
			cos := dot / math.Sqrt(na*nb)
			delta := (a.RT - b.RT) / d
			w := math.Exp(-(delta * delta) / 2)
			sum += 1 - cos*w
		}
	}
	if count == 0 {
		return 1.0, nil
	}
	return sum / float64(count), nil
}

// ScoreMatrix builds the rows(A) x cols(B) position-similarity matrix
// between two alignments.
func ScoreMatrix(a, b *Alignment, d float64) ([][]float64, error) {
	s := make([][]float64, a.Len())
	for i := range s {
		s[i] = make([]float64, b.Len())
		for j := range s[i] {
			v, err := PositionSimilarity(a.PeakAlgt[i], b.PeakAlgt[j], d)
			if err != nil {
				return nil, err
			}
			s[i][j] = v
		}
	}
	return s, nil
}
