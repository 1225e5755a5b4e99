// internal/platform/validator/validator.go
package validator

import (
	"regexp"
	"strings"
)

var (
	artifactIDRegex = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)
	propertyRegex   = regexp.MustCompile(`^-D[A-Za-z0-9_.\-]+(=\S*)?$`)
)

// Maven coordinates

// IsArtifactID reports whether id is a plain Maven artifactId.
func IsArtifactID(id string) bool {
	if len(id) == 0 || len(id) > 255 {
		return false
	}
	return artifactIDRegex.MatchString(id)
}

// IsResumeSelector reports whether s can follow -rf: an artifactId with or
// without the leading ':'.
func IsResumeSelector(s string) bool {
	return IsArtifactID(strings.TrimPrefix(strings.TrimSpace(s), ":"))
}

// Command line arguments

// IsProperty reports whether arg is a -Dname or -Dname=value system property.
func IsProperty(arg string) bool {
	return propertyRegex.MatchString(arg)
}

// IsMavenOption reports whether arg is a single option token: it starts with
// '-' and holds no whitespace. Properties and profiles (-Pname) both qualify.
func IsMavenOption(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	return !strings.ContainsAny(arg, " \t\r\n")
}

// Generic validators

// IsEmpty reports whether s is empty or only whitespace.
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}
