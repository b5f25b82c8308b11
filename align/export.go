// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import (
	"encoding/csv"
	"fmt"
	"io"
)

// RTTable returns a header row of "position" and experiment codes
// followed by one row per alignment position, each cell the RT of that
// experiment's peak at that position or "NA" when absent.
func (a *Alignment) RTTable() [][]string {
	out := make([][]string, 0, a.Len()+1)
	out = append(out, append([]string{"position"}, a.ExprCodes...))
	for pos, row := range a.PeakAlgt {
		line := make([]string, len(a.ExprCodes)+1)
		line[0] = fmt.Sprintf("%d", pos)
		for e, p := range row {
			line[e+1] = "NA"
			if p != nil {
				line[e+1] = fmt.Sprintf("%.4f", p.RT)
			}
		}
		out = append(out, line)
	}
	return out
}

// AreaTable is RTTable's counterpart over integrated peak area; absent
// peaks are also written as "NA".
func (a *Alignment) AreaTable() [][]string {
	out := make([][]string, 0, a.Len()+1)
	out = append(out, append([]string{"position"}, a.ExprCodes...))
	for pos, row := range a.PeakAlgt {
		line := make([]string, len(a.ExprCodes)+1)
		line[0] = fmt.Sprintf("%d", pos)
		for e, p := range row {
			line[e+1] = "NA"
			if p != nil {
				line[e+1] = fmt.Sprintf("%.4f", p.Area)
			}
		}
		out = append(out, line)
	}
	return out
}

// CommonIonTable lists, per position, the mass shared by every
// contributing spectrum (see CommonIon) and a representative peak UID.
func (a *Alignment) CommonIonTable() [][]string {
	out := make([][]string, 0, a.Len()+1)
	out = append(out, []string{"position", "common_ion", "uid"})
	for pos, row := range a.PeakAlgt {
		ion := CommonIon(row)
		uid := ""
		for _, p := range row {
			if p != nil {
				uid = p.UID()
				break
			}
		}
		out = append(out, []string{fmt.Sprintf("%d", pos), fmt.Sprintf("%g", ion), uid})
	}
	return out
}

// WriteRTTableCSV writes the per-position, per-experiment RT table.
func (a *Alignment) WriteRTTableCSV(w io.Writer) error {
	return writeCSV(w, a.RTTable())
}

// WriteAreaTableCSV writes the per-position, per-experiment area table.
func (a *Alignment) WriteAreaTableCSV(w io.Writer) error {
	return writeCSV(w, a.AreaTable())
}

// WriteCommonIonTableCSV writes the per-position common-ion diagnostic
// table.
func (a *Alignment) WriteCommonIonTableCSV(w io.Writer) error {
	return writeCSV(w, a.CommonIonTable())
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
