package maven

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"qdev/internal/core/domain"
)

// DescriptorName is the project descriptor Maven reads in every module.
const DescriptorName = "pom.xml"

// project holds the only parts of a POM qdev cares about. The parent block is
// decoded so its artifactId is not mistaken for the module's own. Modules
// declared inside <profiles> are not read.
type project struct {
	XMLName    xml.Name `xml:"project"`
	ArtifactID string   `xml:"artifactId"`
	Parent     struct {
		ArtifactID string `xml:"artifactId"`
	} `xml:"parent"`
	Modules []string `xml:"modules>module"`
}

// POMReader reads artifact ids and module lists from pom.xml files.
type POMReader struct{}

func NewPOMReader() *POMReader {
	return &POMReader{}
}

// ArtifactID returns the artifactId declared directly under <project> in
// dir/pom.xml. Problems are reported as *domain.ManifestReadError.
func (r POMReader) ArtifactID(dir string) (string, error) {
	p, path, err := r.read(dir)
	if err != nil {
		return "", err
	}

	id := strings.TrimSpace(p.ArtifactID)
	if id == "" {
		return "", &domain.ManifestReadError{Path: path, Err: fmt.Errorf("no artifactId declared")}
	}
	return id, nil
}

// Modules returns the <modules> entries of dir/pom.xml in declaration order,
// trimmed, with empty entries dropped.
func (r POMReader) Modules(dir string) ([]string, error) {
	p, _, err := r.read(dir)
	if err != nil {
		return nil, err
	}

	modules := make([]string, 0, len(p.Modules))
	for _, m := range p.Modules {
		if m = strings.TrimSpace(m); m != "" {
			modules = append(modules, m)
		}
	}
	return modules, nil
}

func (POMReader) read(dir string) (project, string, error) {
	path := filepath.Join(dir, DescriptorName)

	f, err := os.Open(path)
	if err != nil {
		return project{}, path, &domain.ManifestReadError{Path: path, Err: err}
	}
	defer f.Close()

	var p project
	if err := xml.NewDecoder(f).Decode(&p); err != nil {
		return project{}, path, &domain.ManifestReadError{Path: path, Err: err}
	}
	return p, path, nil
}
