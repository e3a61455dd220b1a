package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"

	"github.com/tiwariParth/task-cli/internal/logging"
	"github.com/tiwariParth/task-cli/internal/storage"
	"github.com/tiwariParth/task-cli/internal/task"
)

// DefaultPath is the task file used when no path is configured.
const DefaultPath = "tasks.json"

// FileStore implements the storage.Storage interface using a single
// document on disk
type FileStore struct {
	filePath    string
	format      Format
	logger      *log.Logger
	lockTimeout time.Duration
	lock        *flock.Flock
	now         func() time.Time
}

// Option configures a FileStore.
type Option func(*FileStore)

// WithFormat sets the document encoding. An empty format is inferred from
// the file extension.
func WithFormat(format Format) Option {
	return func(f *FileStore) {
		if format != "" {
			f.format = format
		}
	}
}

// WithLogger sets the logger used for load/save diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(f *FileStore) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithLock makes Load take an exclusive lock on <path>.lock, held until
// Close. A zero timeout waits indefinitely.
func WithLock(timeout time.Duration) Option {
	return func(f *FileStore) {
		f.lockTimeout = timeout
		f.lock = flock.New(f.filePath + ".lock")
	}
}

// NewFileStore creates a new instance of FileStore. Nothing touches the
// disk until Load or Save.
func NewFileStore(filePath string, opts ...Option) *FileStore {
	if filePath == "" {
		filePath = DefaultPath
	}
	f := &FileStore{
		filePath: filePath,
		format:   FormatForPath(filePath),
		logger:   logging.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Path returns the document path.
func (f *FileStore) Path() string {
	return f.filePath
}

// Format returns the document encoding.
func (f *FileStore) Format() Format {
	return f.format
}

// Load reads the task file. A missing file is an empty collection; so is a
// file that cannot be decoded, after its bytes are copied aside.
func (f *FileStore) Load(ctx context.Context) (*task.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.acquire(ctx); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f.logger.Debug("task file does not exist yet", "path", f.filePath)
			return task.NewCollection(nil), nil
		}
		return nil, fmt.Errorf("%w: failed to read %s: %v", storage.ErrStorageIO, f.filePath, err)
	}

	tasks, err := decode(f.format, data)
	if err != nil {
		return f.recoverCorrupt(data, err), nil
	}
	c, moved, err := task.LoadCollection(tasks)
	if err != nil {
		return f.recoverCorrupt(data, err), nil
	}
	for _, m := range moved {
		f.logger.Warn("task has a missing or duplicate id, assigned a new one",
			"path", f.filePath, "record", m.Index, "old_id", m.OldID, "id", m.NewID)
	}

	f.logger.Debug("loaded tasks", "path", f.filePath, "count", c.Len())
	return c, nil
}

// recoverCorrupt logs why data was rejected, keeps a copy of it and returns
// an empty collection.
func (f *FileStore) recoverCorrupt(data []byte, cause error) *task.Collection {
	f.logger.Warn("task file is unreadable, starting with an empty list",
		"path", f.filePath, "format", f.format, "err", cause)
	f.backupCorrupt(data)
	return task.NewCollection(nil)
}

// Save encodes c and atomically replaces the task file.
func (f *FileStore) Save(ctx context.Context, c *task.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encode(f.format, c.Tasks())
	if err != nil {
		return fmt.Errorf("%w: failed to encode tasks: %v", storage.ErrStorageIO, err)
	}
	if err := writeAtomic(f.filePath, data); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrStorageIO, err)
	}

	f.logger.Debug("saved tasks", "path", f.filePath, "count", c.Len())
	return nil
}

// Close releases the lock taken by Load, if any.
func (f *FileStore) Close() error {
	if f.lock == nil || !f.lock.Locked() {
		return nil
	}
	if err := f.lock.Unlock(); err != nil {
		return fmt.Errorf("%w: failed to release lock: %v", storage.ErrStorageIO, err)
	}
	return nil
}

func (f *FileStore) acquire(ctx context.Context) error {
	if f.lock == nil || f.lock.Locked() {
		return nil
	}
	if err := ensureDir(f.filePath); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrStorageIO, err)
	}

	lockCtx := ctx
	if f.lockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, f.lockTimeout)
		defer cancel()
	}

	locked, err := f.lock.TryLockContext(lockCtx, 50*time.Millisecond)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", storage.ErrLocked, f.lock.Path())
		}
		return fmt.Errorf("%w: failed to lock %s: %v", storage.ErrStorageIO, f.lock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", storage.ErrLocked, f.lock.Path())
	}
	f.logger.Debug("acquired lock", "path", f.lock.Path())
	return nil
}

// backupCorrupt copies unreadable data to <path>.corrupt.<timestamp> so the
// next save does not destroy it. Nothing is written when an identical copy
// already exists. Failures are logged only.
func (f *FileStore) backupCorrupt(data []byte) {
	if existing := f.findBackup(data); existing != "" {
		f.logger.Debug("unreadable task file already backed up", "path", existing)
		return
	}
	backupPath := f.filePath + ".corrupt." + f.now().Format("20060102150405")
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		f.logger.Warn("failed to back up unreadable task file", "path", backupPath, "err", err)
		return
	}
	f.logger.Warn("unreadable task file backed up", "path", backupPath)
}

// findBackup returns the path of an existing backup holding exactly data.
func (f *FileStore) findBackup(data []byte) string {
	dir := filepath.Dir(f.filePath)
	prefix := filepath.Base(f.filePath) + ".corrupt."
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
			return path
		}
	}
	return ""
}

// writeAtomic writes data to a temp file next to path and renames it over
// path.
func writeAtomic(path string, data []byte) (err error) {
	if err := ensureDir(path); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
