package scan

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"

	xxhash "github.com/cespare/xxhash/v2"
)

// skippedByHash reports whether the file's content digest appears in the
// run's skip-list. Only the digest widths actually present in the list are
// computed. Read failures count as "not skipped": the extractor will hit
// the same error itself and log it there.
func (c *Context) skippedByHash(path string) bool {
	if c.Skiplist == nil || c.Skiplist.Len() == 0 {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	var writers []io.Writer
	var md5h = md5.New()
	var xxh = xxhash.New()
	if c.Skiplist.WantsMD5() {
		writers = append(writers, md5h)
	}
	if c.Skiplist.WantsXXHash() {
		writers = append(writers, xxh)
	}
	if len(writers) == 0 {
		return false
	}
	if _, err := io.Copy(io.MultiWriter(writers...), f); err != nil {
		return false
	}
	if c.Skiplist.WantsMD5() && c.Skiplist.Contains(hex.EncodeToString(md5h.Sum(nil))) {
		return true
	}
	if c.Skiplist.WantsXXHash() && c.Skiplist.Contains(hex.EncodeToString(xxh.Sum(nil))) {
		return true
	}
	return false
}
