// Package version provides build-time version information.
//
// Variables are set at build time via ldflags:
//
//	go build -ldflags "-X github.com/rickgao/gbce-market/internal/version.Version=1.0.0 \
//	                   -X github.com/rickgao/gbce-market/internal/version.Commit=$(git rev-parse --short HEAD)" \
//	         ./cmd/exchange
package version

// Product is the name sent to feed servers.
const Product = "gbce-exchange"

// Build-time variables (set via ldflags)
var (
	// Version is the semantic version (e.g., "1.0.0")
	Version = "dev"

	// Commit is the git commit hash (short form)
	Commit = "unknown"
)

// String returns a formatted version string.
func String() string {
	return Version + " (" + Commit + ")"
}

// UserAgent identifies this build in outbound connections,
// e.g. "gbce-exchange/1.0.0".
func UserAgent() string {
	return Product + "/" + Version
}
