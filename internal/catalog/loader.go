package catalog

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Load reads a newline-delimited JSON product feed from path. Each line
// holds one JSON object, optionally followed by a trailing comma. Lines
// that fail to decode, or decode to an object without a sku, are logged and
// skipped; loading never aborts on a single bad line.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	defer f.Close()

	return parse(f, path)
}

// LoadGlob loads every feed file matching the doublestar pattern and merges
// them into one catalog, in lexical file order. A pattern without meta
// characters behaves like Load.
func LoadGlob(pattern string) (*Catalog, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad catalog pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no catalog files match %q", pattern)
	}
	sort.Strings(matches)

	merged := newCatalog()
	for _, path := range matches {
		c, err := Load(path)
		if err != nil {
			return nil, err
		}
		merged.append(c)
	}
	merged.sealFingerprint()
	return merged, nil
}

// parse decodes one feed stream. The raw accepted lines are folded into the
// catalog fingerprint so index staleness can be detected later.
func parse(r io.Reader, name string) (*Catalog, error) {
	c := newCatalog()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()

		line := strings.TrimSpace(raw)
		line = strings.TrimSuffix(line, ",")
		if line == "" {
			continue
		}

		var p Product
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			log.Printf("catalog: %s:%d: skipping malformed line: %v", name, lineNo, err)
			continue
		}
		if p.SKU == "" {
			log.Printf("catalog: %s:%d: skipping product without sku", name, lineNo)
			continue
		}

		c.add(p, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", name, err)
	}

	c.sealFingerprint()
	return c, nil
}

// fingerprintLines hashes the accepted raw feed lines in load order.
func fingerprintLines(lines []string) string {
	h := sha256.New()
	for _, l := range lines {
		h.Write([]byte(l))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}
