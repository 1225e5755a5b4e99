// internal/core/ports/manifest.go
package ports

// ManifestReader reads the project descriptor in a module directory.
// Failures are *domain.ManifestReadError.
type ManifestReader interface {
	// ArtifactID returns the module's own artifact identifier.
	ArtifactID(dir string) (string, error)

	// Modules returns the aggregated child modules, as declared: paths
	// relative to dir. A module that aggregates nothing returns an empty list.
	Modules(dir string) ([]string, error)
}
