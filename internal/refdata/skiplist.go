package refdata

import (
	"bufio"
	"os"
	"strings"
)

// Skiplist is a set of lowercase content-hash digests identifying files to
// exclude from VIN scanning (factory firmware, templates). Digests may be
// md5 (32 hex chars) or xxhash64 (16 hex chars); both forms can be mixed in
// one file. Blank lines are ignored.
type Skiplist struct {
	digests map[string]struct{}
	has16   bool
	has32   bool
}

// LoadSkiplist reads a newline-delimited digest file. A missing file yields
// an empty list.
func LoadSkiplist(path string) (*Skiplist, error) {
	s := &Skiplist{digests: map[string]struct{}{}}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.ToLower(strings.TrimSpace(sc.Text()))
		if line == "" {
			continue
		}
		s.digests[line] = struct{}{}
		switch len(line) {
		case 16:
			s.has16 = true
		case 32:
			s.has32 = true
		}
	}
	return s, sc.Err()
}

// Contains tests digest membership. The digest must already be lowercase hex.
func (s *Skiplist) Contains(digest string) bool {
	_, ok := s.digests[digest]
	return ok
}

// Len reports the number of loaded digests.
func (s *Skiplist) Len() int { return len(s.digests) }

// WantsMD5 reports whether any 32-char digest is present, so callers can
// avoid computing digests no entry could match.
func (s *Skiplist) WantsMD5() bool { return s.has32 }

// WantsXXHash reports whether any 16-char digest is present.
func (s *Skiplist) WantsXXHash() bool { return s.has16 }
