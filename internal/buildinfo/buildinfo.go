// Package buildinfo holds release metadata injected at link time, e.g.
//
//	go build -ldflags "-X github.com/aidanlsb/hdate/internal/buildinfo.Version=v0.1.0"
//
// Local builds leave them empty and fall back to runtime/debug build info.
package buildinfo

var (
	Version = ""
	Commit  = ""
	Date    = ""
)
