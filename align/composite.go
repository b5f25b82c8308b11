// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import (
	"math"
	"sort"

	"github.com/snowdonr/gcms/matrix"
	"github.com/snowdonr/gcms/peak"
)

// CompositePeak averages the non-null peaks at one alignment position
// into a single representative peak: RT is the mean of member RTs
// (MAD-filtered to exclude outliers when more than three peaks
// contribute), and the spectrum is the mean of member spectra each
// normalized to a max intensity of 100.
func CompositePeak(row []*peak.Peak) *peak.Peak {
	var members []*peak.Peak
	for _, p := range row {
		if p != nil {
			members = append(members, p)
		}
	}
	if len(members) == 0 {
		return nil
	}

	rts := make([]float64, len(members))
	for i, p := range members {
		rts[i] = p.RT
	}
	kept := members
	keptRTs := rts
	if len(members) > 3 {
		keptRTs, kept = excludeRTOutliers(rts, members)
	}

	rtSum := 0.0
	for _, rt := range keptRTs {
		rtSum += rt
	}
	meanRT := rtSum / float64(len(keptRTs))

	spectrum := averageSpectrum(kept)
	bounds := [3]int{kept[0].BoundsLeft, kept[0].ApexScan, kept[0].BoundsRight}
	out := peak.New(meanRT, spectrum, bounds)
	areaSum := 0.0
	for _, p := range kept {
		areaSum += p.Area
	}
	if areaSum > 0 {
		out.Area = areaSum / float64(len(kept))
	}
	return out
}

// excludeRTOutliers drops any RT more than 3*MAD from the median,
// returning the filtered RTs alongside their backing peaks. If the MAD
// is zero, or everything would be excluded, the original sets are
// returned unchanged.
func excludeRTOutliers(rts []float64, members []*peak.Peak) ([]float64, []*peak.Peak) {
	sorted := append([]float64(nil), rts...)
	sort.Float64s(sorted)
	med := median(sorted)
	devs := make([]float64, len(rts))
	for i, rt := range rts {
		devs[i] = math.Abs(rt - med)
	}
	sortedDevs := append([]float64(nil), devs...)
	sort.Float64s(sortedDevs)
	mad := median(sortedDevs)
	if mad == 0 {
		return rts, members
	}

	var keptRTs []float64
	var kept []*peak.Peak
	for i, rt := range rts {
		if devs[i] <= 3*mad {
			keptRTs = append(keptRTs, rt)
			kept = append(kept, members[i])
		} else {
			members[i].Outlier = true
		}
	}
	if len(kept) == 0 {
		return rts, members
	}
	return keptRTs, kept
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

// averageSpectrum max-normalizes each member spectrum to 100 and takes
// the mean intensity per mass across members sharing that mass's index
// position; spectra of differing length take the shortest common
// length.
func averageSpectrum(members []*peak.Peak) *matrix.MassSpectrum {
	var withSpectra []*peak.Peak
	minLen := -1
	for _, p := range members {
		if p.Spectrum == nil || len(p.Spectrum.MassList) == 0 {
			continue
		}
		withSpectra = append(withSpectra, p)
		if minLen == -1 || len(p.Spectrum.MassList) < minLen {
			minLen = len(p.Spectrum.MassList)
		}
	}
	if len(withSpectra) == 0 {
		return nil
	}

	masses := withSpectra[0].Spectrum.MassList[:minLen]
	sums := make([]float64, minLen)
	for _, p := range withSpectra {
		maxI := 0.0
		for _, v := range p.Spectrum.Intensities {
			if v > maxI {
				maxI = v
			}
		}
		if maxI == 0 {
			continue
		}
		for i := 0; i < minLen; i++ {
			sums[i] += 100 * p.Spectrum.Intensities[i] / maxI
		}
	}
	avg := make([]float64, minLen)
	for i := range avg {
		avg[i] = sums[i] / float64(len(withSpectra))
	}
	out, err := matrix.NewMassSpectrum(append([]float64(nil), masses...), avg)
	if err != nil {
		return nil
	}
	return out
}

// CommonIon returns the mass shared by all non-null member spectra at
// this position with the greatest minimum relative intensity across
// members, or 0 if no mass is common to every spectrum.
func CommonIon(row []*peak.Peak) float64 {
	var spectra []*matrix.MassSpectrum
	for _, p := range row {
		if p != nil && p.Spectrum != nil && len(p.Spectrum.MassList) > 0 {
			spectra = append(spectra, p.Spectrum)
		}
	}
	if len(spectra) == 0 {
		return 0
	}

	best, bestScore := 0.0, -1.0
	for i, m := range spectra[0].MassList {
		maxI := 0.0
		for _, v := range spectra[0].Intensities {
			if v > maxI {
				maxI = v
			}
		}
		if maxI == 0 {
			continue
		}
		minRel := spectra[0].Intensities[i] / maxI
		presentInAll := true
		for _, sp := range spectra[1:] {
			idx := -1
			for j, m2 := range sp.MassList {
				if m2 == m {
					idx = j
					break
				}
			}
			if idx == -1 {
				presentInAll = false
				break
			}
			spMax := 0.0
			for _, v := range sp.Intensities {
				if v > spMax {
					spMax = v
				}
			}
			if spMax == 0 {
				presentInAll = false
				break
			}
			rel := sp.Intensities[idx] / spMax
			if rel < minRel {
				minRel = rel
			}
		}
		if !presentInAll {
			continue
		}
		if minRel > bestScore {
			best, bestScore = m, minRel
		}
	}
	return best
}

// HighestMzIon returns the largest mass in the spectrum whose relative
// intensity (against the spectrum's own maximum) is at least threshold.
// Gap filling uses it to pick qualifier ions, and as the common ion when
// CommonIon finds no shared mass.
func HighestMzIon(spectrum *matrix.MassSpectrum, threshold float64) float64 {
	return highestMzIon(spectrum, threshold, math.NaN())
}

// HighestMzIonExcept is HighestMzIon with one mass excluded from
// consideration, so that calling HighestMzIon once and this a second
// time with the first result as exclude yields two distinct qualifier
// ions.
func HighestMzIonExcept(spectrum *matrix.MassSpectrum, threshold, exclude float64) float64 {
	return highestMzIon(spectrum, threshold, exclude)
}

func highestMzIon(spectrum *matrix.MassSpectrum, threshold, exclude float64) float64 {
	if spectrum == nil || len(spectrum.MassList) == 0 {
		return 0
	}
	maxI := 0.0
	for _, v := range spectrum.Intensities {
		if v > maxI {
			maxI = v
		}
	}
	if maxI == 0 {
		return 0
	}
	best := 0.0
	for i, m := range spectrum.MassList {
		if m == exclude {
			continue
		}
		if spectrum.Intensities[i]/maxI >= threshold && m > best {
			best = m
		}
	}
	return best
}
