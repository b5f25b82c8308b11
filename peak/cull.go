// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package peak

import (
	"fmt"

	"github.com/biogo/store/interval"
)

// CullOverlapping removes peaks whose scan-bounds interval is completely
// contained within a higher-intensity neighbor's interval, generalizing
// the BLAST subject-interval containment culler to peak scan bounds.
func CullOverlapping(peaks []*Peak) []*Peak {
	var tree interval.IntTree
	for i, p := range peaks {
		err := tree.Insert(boundsInterval{uid: uintptr(i), peak: p}, true)
		if err != nil {
			panic(fmt.Sprint(err))
		}
	}
	tree.AdjustRanges()

	var kept []*Peak
outer:
	for _, p := range peaks {
		o := tree.Get(boundsInterval{peak: p})
		for _, h := range o {
			if other := h.(boundsInterval); other.peak != p && apexIntensity(other.peak) > apexIntensity(p) {
				continue outer
			}
		}
		kept = append(kept, p)
	}
	return kept
}

type boundsInterval struct {
	uid  uintptr
	peak *Peak
}

// Overlap reports whether b completely contains i's scan-bounds range.
func (i boundsInterval) Overlap(b interval.IntRange) bool {
	left, right := i.peak.ApexScan-i.peak.BoundsLeft, i.peak.ApexScan+i.peak.BoundsRight
	return b.Start <= left && right <= b.End
}

func (i boundsInterval) ID() uintptr { return i.uid }

func (i boundsInterval) Range() interval.IntRange {
	return interval.IntRange{
		Start: i.peak.ApexScan - i.peak.BoundsLeft,
		End:   i.peak.ApexScan + i.peak.BoundsRight,
	}
}

func apexIntensity(p *Peak) float64 {
	if p.Spectrum == nil {
		return 0
	}
	max := 0.0
	for _, v := range p.Spectrum.Intensities {
		if v > max {
			max = v
		}
	}
	return max
}
