// Package version carries build metadata stamped in via -ldflags.
package version

// Set at build time:
//
//	go build -ldflags "-X github.com/importscout/importscout/pkg/version.Version=v1.2.3"
var (
	// Version is the release tag.
	Version = "dev"
	// Commit is the git hash the binary was built from.
	Commit = "<unknown>"
	// Date is the build timestamp.
	Date = "<unknown>"
)
