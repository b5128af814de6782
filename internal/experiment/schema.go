package experiment

import (
	_ "embed"
)

//go:embed schema.cue
var schemaCUE []byte
