package data

import (
	"embed"
)

// Seed holds the fixtures loaded by the seed command.
//
//go:embed seed/*.json
var Seed embed.FS
