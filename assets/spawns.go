package assets

import _ "embed"

// SpawnTableYAML is the default spawn table used when no other table is
// configured.
//
//go:embed spawns.yaml
var SpawnTableYAML []byte
