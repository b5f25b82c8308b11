// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package convert builds the command line for an optional external
// vendor-format conversion step, run before ingestion to turn an
// instrument's native acquisition file into one of the formats rawdata
// Loader implementations understand.
package convert

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/biogo/external"
)

// ToCDF describes an invocation of a vendor-supplied netCDF/ANDI
// exporter. Field tags follow the same buildarg template convention
// used elsewhere in the pack's external-command wrappers.
type ToCDF struct {
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}vendor-to-cdf{{end}}"`

	In  string `buildarg:"-in{{split}}{{.}}"`                    // -in <s>
	Out string `buildarg:"-out{{split}}{{.}}"`                   // -out <s>
	Mode string `buildarg:"{{with .}}-mode{{split}}{{.}}{{end}}"` // -mode <s>

	// ExtraFlags is passed through to the exporter as flags.
	ExtraFlags string
}

// BuildCommand constructs the exec.Cmd for this conversion.
func (c ToCDF) BuildCommand() (*exec.Cmd, error) {
	if c.In == "" {
		return nil, errors.New("convert: missing input file")
	}
	if c.Out == "" {
		return nil, errors.New("convert: missing output file")
	}
	cl := external.Must(external.Build(c))
	var extra []string
	if c.ExtraFlags != "" {
		extra = strings.Split(c.ExtraFlags, " ")
	}
	return exec.Command(cl[0], append(cl[1:], extra...)...), nil
}
