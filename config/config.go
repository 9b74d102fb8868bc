package config

// Version is the build version reported by /v1/version.
var Version = "0.1.0"
