package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Archive writes rendered quotes to a directory, one file per quote.
type Archive struct {
	dir string
	now func() time.Time
	log logrus.FieldLogger
}

func NewArchive(dir string, log logrus.FieldLogger) (*Archive, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Archive{dir: dir, now: time.Now, log: log}, nil
}

func (a *Archive) Put(ctx context.Context, name, _ string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid archive name %q", name)
	}
	path := filepath.Join(a.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

// Prune removes archived files older than retention and reports how many went.
func (a *Archive) Prune(retention time.Duration) (int, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return 0, fmt.Errorf("read archive dir: %w", err)
	}
	cutoff := a.now().Add(-retention)
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(a.dir, e.Name())); err != nil {
				a.log.WithError(err).WithField("file", e.Name()).Warn("archive: prune failed")
				continue
			}
			removed++
		}
	}
	return removed, nil
}
