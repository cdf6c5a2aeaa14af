package version

// Version is stamped at release time (ldflags -X morphclone/internal/version.Version).
var Version = "0.3.0"
