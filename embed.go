// Package swcatalog provides embedded runtime resources.
package swcatalog

import (
	_ "embed"
)

// ExampleConfig is the commented sample config written by `swcatalog config init`.
// Its values match config.DefaultConfig.
//
//go:embed swcatalog.example.yaml
var ExampleConfig []byte
