// Package entities defines core domain models and data structures.
package entities

// Artifact represents a packaged application artifact for one build variant
type Artifact struct {
	Name     string `json:"name" yaml:"name"`
	Version  string `json:"version" yaml:"version"`
	Variant  string `json:"variant" yaml:"variant"` // e.g. "emulator-release-arm64-v8a"
	Path     string `json:"path" yaml:"path"`
	Checksum string `json:"checksum" yaml:"checksum"` // hex SHA-256 of the file at Path
	Type     string `json:"type" yaml:"type"`         // "apk"
}
