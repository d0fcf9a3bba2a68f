// Package buildinfo exposes build metadata stamped in via ldflags.
package buildinfo

import (
	"fmt"
	"io"
)

// Set at build time:
//
//	go build -ldflags "-X .../internal/buildinfo.Version=v1.2.3 ..."
var (
	Version = "N/A"
	Date    = "N/A"
	Commit  = "N/A"
)

func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", Date)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
