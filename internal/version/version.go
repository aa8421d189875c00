package version

// Version is the semantic version of the gateway.
const Version = "0.2.0"
