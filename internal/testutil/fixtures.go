// internal/testutil/fixtures.go
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// Sample log contents, as Maven prints them.
const (
	LogPassing = "[INFO] BUILD SUCCESS\n[INFO] build succeeded\n"
	LogFailing = "[INFO] Running tests\n[ERROR] build failed\n[INFO] BUILD FAILURE\n"
)

// Tree is a throwaway source tree laid out like a Quarkus checkout:
// <root>/extensions/<name> and <root>/integration-tests/<name>, each with a pom.xml.
type Tree struct {
	t    *testing.T
	Root string
}

// NewTree creates an empty tree under t.TempDir().
func NewTree(t *testing.T) *Tree {
	t.Helper()
	root := t.TempDir()
	for _, sub := range []string{"extensions", "integration-tests"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			t.Fatalf("creating %s: %v", sub, err)
		}
	}
	return &Tree{t: t, Root: root}
}

// Extension adds extensions/<name> declaring artifactID and returns its path.
func (tr *Tree) Extension(name, artifactID string) string {
	return tr.Module(filepath.Join("extensions", name), artifactID)
}

// IntegrationTest adds integration-tests/<name> declaring artifactID and returns its path.
func (tr *Tree) IntegrationTest(name, artifactID string) string {
	return tr.Module(filepath.Join("integration-tests", name), artifactID)
}

// Module adds a module at rel. An empty artifactID leaves out pom.xml.
func (tr *Tree) Module(rel, artifactID string) string {
	tr.t.Helper()
	dir := filepath.Join(tr.Root, rel)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		tr.t.Fatalf("creating %s: %v", dir, err)
	}
	if artifactID != "" {
		WriteFile(tr.t, filepath.Join(dir, "pom.xml"), POM(artifactID))
	}
	return dir
}

// POM returns a minimal module descriptor with a parent, the way Quarkus
// modules declare theirs.
func POM(artifactID string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <parent>
    <groupId>io.quarkus</groupId>
    <artifactId>quarkus-integration-tests-parent</artifactId>
    <version>999-SNAPSHOT</version>
  </parent>
  <artifactId>%s</artifactId>
  <name>Quarkus - Integration Tests - %s</name>
</project>
`, artifactID, artifactID)
}
