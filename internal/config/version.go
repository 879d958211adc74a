package config

// Version is the synapse binary version.
// Set at build time via: -ldflags "-X github.com/jotarampini-cell/synapse/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
