// Package version exposes build metadata stamped in at link time, e.g.
//
//	go build -ldflags "-X github.com/kailas-cloud/pokedex/internal/version.Version=v1.2.0"
package version

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
