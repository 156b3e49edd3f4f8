package commands

// ExtractVersion exports extractVersion for testing.
var ExtractVersion = extractVersion //nolint:gochecknoglobals // test export
