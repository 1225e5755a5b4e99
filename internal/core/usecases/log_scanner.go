// internal/core/usecases/log_scanner.go
package usecases

import (
	"bufio"
	"os"
	"strings"

	"qdev/internal/core/domain"
	"qdev/internal/platform/errors"
)

// DefaultFailureMarker is the token Maven prefixes error lines with.
const DefaultFailureMarker = "[ERROR]"

// LogScanner classifies a captured build log by looking for a literal
// failure marker anywhere in a line. Quoted occurrences count too.
type LogScanner struct {
	marker string
}

// NewLogScanner returns a scanner for marker, or DefaultFailureMarker when empty.
func NewLogScanner(marker string) *LogScanner {
	if marker == "" {
		marker = DefaultFailureMarker
	}
	return &LogScanner{marker: marker}
}

// Scan reports VerdictFailed when path exists and holds at least one line
// containing the marker. A missing file is VerdictPassed. Any other read
// problem is returned with VerdictPassed.
func (s *LogScanner) Scan(path string) (domain.Verdict, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.VerdictPassed, nil
		}
		return domain.VerdictPassed, errors.Wrapf(err, "opening log %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024) // 10MB max line

	for scanner.Scan() {
		if strings.Contains(scanner.Text(), s.marker) {
			return domain.VerdictFailed, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return domain.VerdictPassed, errors.Wrapf(err, "reading log %s", path)
	}
	return domain.VerdictPassed, nil
}

// Marker returns the token being searched for.
func (s *LogScanner) Marker() string {
	return s.marker
}
