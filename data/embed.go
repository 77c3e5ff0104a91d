// Package data provides the embedded scene files.
package data

import "embed"

// sceneFS embeds all scene files from the data directory at build time.
//
//go:embed *.yaml *.json
var sceneFS embed.FS

// FS returns the embedded filesystem containing scene files.
func FS() embed.FS {
	return sceneFS
}
