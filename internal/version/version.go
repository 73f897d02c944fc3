package version

// Build information set by ldflags
var (
	Version = "dev"     // -X .../internal/version.Version={{.Version}}
	Commit  = "unknown" // -X .../internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X .../internal/version.Date={{.Date}}
)
