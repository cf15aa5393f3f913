package picker

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version is the module release version.
var Version = strings.TrimSpace(rawVersion)
