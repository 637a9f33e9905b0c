// Package data embeds reference AGS files used for demos and tests
package data

import (
	_ "embed"
)

// SampleAGS is a small AGS4 file with PROJ, TRAN, LOCA, GEOL, SAMP and LLPL groups
//
//go:embed sample.ags
var SampleAGS []byte
