package specgen

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// cacheSchemaVersion guards against decoding a payload written by an
// older, incompatible build of the compiler.
const cacheSchemaVersion uint16 = 1

// DiskCache stores a compiled spec directory's artifacts under a single
// file keyed by the directory's content hash, so repeated `zpl genspec`
// runs against an unchanged spec directory skip re-running the spec
// compiler entirely — the same role driver.DiskCache plays for
// the teacher's module metadata, adapted from a per-module-hash cache to
// a single whole-directory cache since the spec directory compiles as
// one unit, not incrementally per file.
type DiskCache struct {
	mu  sync.Mutex
	dir string
}

// CachePayload is the on-disk, msgpack-encoded cache entry.
type CachePayload struct {
	Schema          uint16
	SpecDirHash     string
	TablesJSON      []byte
	ConstraintsJSON []byte
	DocsJSON        []byte
	CoverageJSON    []byte
}

// OpenDiskCache returns a disk cache rooted at dir (typically the
// configured cache_dir, e.g. ".zplcache"), creating it if absent.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("specgen: failed to create cache dir %q: %w", dir, err)
	}
	return &DiskCache{dir: dir}, nil
}

// HashSpecDir computes a deterministic content hash of every spec file
// under dir: each file's path (relative to dir) and content are folded
// into a single SHA-256 digest, so renaming, adding, removing, or
// editing any file invalidates the cache.
func HashSpecDir(dir string) (string, error) {
	files, err := listSpecFiles(dir)
	if err != nil {
		return "", err
	}
	sort.Strings(files)

	h := sha256.New()
	for _, path := range files {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		// #nosec G304 -- path is enumerated from the configured spec directory
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("specgen: failed to read %q while hashing: %w", path, err)
		}
		fmt.Fprintf(h, "%s\x00%d\x00", filepath.ToSlash(rel), len(data))
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (c *DiskCache) pathFor(hash string) string {
	return filepath.Join(c.dir, "tables-"+hash+".mp")
}

// Get reads a cached payload for the given spec-dir hash. ok is false on
// a cache miss (including "no cache dir yet"); a decode failure of an
// existing file is still surfaced as an error since it indicates disk
// corruption, not an ordinary miss.
func (c *DiskCache) Get(specDirHash string) (payload CachePayload, ok bool, err error) {
	if c == nil {
		return CachePayload{}, false, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.Open(c.pathFor(specDirHash))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return CachePayload{}, false, nil
		}
		return CachePayload{}, false, err
	}
	defer f.Close() //nolint:errcheck

	var p CachePayload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return CachePayload{}, false, fmt.Errorf("specgen: corrupt cache entry: %w", err)
	}
	if p.Schema != cacheSchemaVersion || p.SpecDirHash != specDirHash {
		return CachePayload{}, false, nil
	}
	return p, true, nil
}

// Put writes payload for the given spec-dir hash, replacing any prior
// entry atomically via a temp-file-then-rename.
func (c *DiskCache) Put(specDirHash string, a Artifacts) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	coverageJSON, err := json.Marshal(a.Coverage)
	if err != nil {
		return fmt.Errorf("specgen: failed to marshal coverage for cache: %w", err)
	}
	payload := CachePayload{
		Schema:          cacheSchemaVersion,
		SpecDirHash:     specDirHash,
		TablesJSON:      a.TablesJSON,
		ConstraintsJSON: a.ConstraintsJSON,
		DocsJSON:        a.DocsJSON,
		CoverageJSON:    coverageJSON,
	}

	dest := c.pathFor(specDirHash)
	tmp, err := os.CreateTemp(c.dir, "tmp-*.mp")
	if err != nil {
		return fmt.Errorf("specgen: failed to create cache temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }() //nolint:errcheck

	if err := msgpack.NewEncoder(tmp).Encode(&payload); err != nil {
		_ = tmp.Close() //nolint:errcheck
		return fmt.Errorf("specgen: failed to encode cache payload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("specgen: failed to close cache temp file: %w", err)
	}
	return os.Rename(tmpPath, dest)
}
