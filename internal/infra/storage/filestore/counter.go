package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Counter keeps the quote sequence as a decimal string in a single file.
// A missing or unparsable file counts as zero.
type Counter struct {
	path string
	mu   sync.Mutex
	log  logrus.FieldLogger
}

func NewCounter(path string, log logrus.FieldLogger) (*Counter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("counter dir: %w", err)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Counter{path: path, log: log}, nil
}

func (c *Counter) Next(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := c.read()
	if err != nil {
		return 0, err
	}
	n++
	if err := c.write(n); err != nil {
		return 0, err
	}
	return n, nil
}

func (c *Counter) Current(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read()
}

func (c *Counter) read() (int64, error) {
	raw, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read counter: %w", err)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil || n < 0 {
		c.log.WithField("path", c.path).Warn("sequence: counter file unreadable, starting from zero")
		return 0, nil
	}
	return n, nil
}

func (c *Counter) write(n int64) error {
	tmp, err := os.CreateTemp(filepath.Dir(c.path), ".counter-*")
	if err != nil {
		return fmt.Errorf("write counter: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(strconv.FormatInt(n, 10)); err != nil {
		tmp.Close()
		return fmt.Errorf("write counter: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("write counter: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write counter: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("write counter: %w", err)
	}
	return nil
}
