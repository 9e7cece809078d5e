package figspec

// Version is the release version, overridden at build time with -ldflags "-X github.com/aretw0/figspec.Version=...".
var Version = "0.1.0"
