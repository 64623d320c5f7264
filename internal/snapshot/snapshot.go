// Package snapshot persists a project's graph to a single file under the
// per-user cache directory, so a cold start can resume from the last
// indexed state instead of re-parsing every file.
package snapshot

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codegraphhq/codegraph/internal/diag"
	"github.com/codegraphhq/codegraph/internal/graphdb"
)

// Version gates snapshot compatibility: a mismatch between this constant
// and a loaded snapshot's Version triggers a full rebuild rather than an
// attempt to decode a shape this build no longer understands.
const Version = 1

// Snapshot is the full on-disk payload: enough to reconstruct the graph
// and to compute a staleness diff on the next cold start without
// re-parsing files whose content hash hasn't changed.
type Snapshot struct {
	Version     int
	ProjectRoot string
	FileHashes  map[string]string // absolute path -> content hash
	Graph       graphdb.Snapshot
	Diagnostics []diag.Diagnostic
}

// HashContent returns the content hash snapshot comparisons are keyed on.
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// CachePath returns the snapshot file path for projectRoot, under
// os.UserCacheDir()/codegraph/<sha256(abs project root)>.snap. Keying on
// a hash of the absolute root (rather than some encoding of the path
// itself) sidesteps any filesystem path-length or character restrictions
// the cache directory's volume might impose.
func CachePath(projectRoot string) (string, error) {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		return "", err
	}
	userCache, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256([]byte(filepath.Clean(abs)))
	name := hex.EncodeToString(sum[:]) + ".snap"
	return filepath.Join(userCache, "codegraph", name), nil
}

// Save atomically writes snap to path: encode into a temp file in the
// same directory, fsync, then rename over any existing snapshot. The
// same-directory temp file keeps the rename a same-filesystem atomic
// operation rather than risking a cross-device copy.
func Save(path string, snap Snapshot) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("snapshot: create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snap-*.tmp")
	if err != nil {
		return fmt.Errorf("snapshot: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if err := gob.NewEncoder(tmp).Encode(snap); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("snapshot: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("snapshot: rename into place: %w", err)
	}
	return nil
}

// Load decodes the snapshot at path. A missing file is reported via the
// plain os.IsNotExist error so callers can distinguish "no prior
// snapshot" from a genuine read failure.
func Load(path string) (Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return Snapshot{}, err
	}
	defer f.Close()

	var snap Snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: decode: %w", err)
	}
	return snap, nil
}
