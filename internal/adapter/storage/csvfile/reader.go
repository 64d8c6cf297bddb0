package csvfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"vending-machine/config"
	"vending-machine/internal/core/domain"
	"vending-machine/pkg/apperror"

	"github.com/rs/zerolog"
)

// Reader implements ports.InventoryReader for processes that only watch the
// stock file, such as the status server. The file is re-read whenever it has
// been replaced or modified since the last read. Reader is safe for
// concurrent use.
type Reader struct {
	path   string
	policy string
	log    zerolog.Logger

	mu     sync.Mutex
	inv    *domain.Inventory
	info   fs.FileInfo
	loaded bool
	err    error
}

// NewReader creates a reader for cfg.Path. The first lookup reads the file.
func NewReader(cfg config.InventoryConfig, log zerolog.Logger) *Reader {
	path := cfg.Path
	if path == "" {
		path = config.DefaultInventoryPath
	}
	policy := cfg.MissingPolicy
	if policy == "" {
		policy = config.MissingPolicyEmpty
	}
	return &Reader{
		path:   path,
		policy: policy,
		log:    log,
		inv:    domain.NewInventory(),
	}
}

// Path returns the watched file location.
func (r *Reader) Path() string {
	return r.path
}

// Load reads the file now so start-up fails on a corrupt or, under the fail
// policy, missing file.
func (r *Reader) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return apperror.ErrStorageUnavailable(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refresh()
}

// Get looks up an item in the current file content.
func (r *Reader) Get(name string) (domain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.refresh(); err != nil {
		return domain.Item{}, err
	}
	item, ok := r.inv.Get(name)
	if !ok {
		return domain.Item{}, apperror.ErrNotFound(name)
	}
	return item, nil
}

// Snapshot returns a copy of the current file content. If the file cannot
// be read the last good copy is returned.
func (r *Reader) Snapshot() *domain.Inventory {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.refresh(); err != nil {
		r.log.Warn().Err(err).Str("path", r.path).Msg("serving last good inventory")
	}
	return r.inv.Clone()
}

// Ping implements ports.HealthChecker. The file must exist as a regular
// file and decode cleanly.
func (r *Reader) Ping(_ context.Context) error {
	info, err := os.Stat(r.path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", r.path)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refresh()
}

// Name returns the dependency name.
func (r *Reader) Name() string {
	return "inventory"
}

// refresh re-reads the file when it changed. Callers hold r.mu.
func (r *Reader) refresh() error {
	if r.loaded && r.err == nil && !r.changed() {
		return nil
	}

	inv, info, err := readFile(r.path, r.policy)
	r.loaded = true
	r.err = err
	if err != nil {
		return err
	}
	r.inv = inv
	r.info = info

	r.log.Debug().
		Str("path", r.path).
		Int("items", inv.Len()).
		Msg("inventory reloaded")

	return nil
}

func (r *Reader) changed() bool {
	info, err := os.Stat(r.path)
	if err != nil {
		// A file that is still missing under the empty policy is unchanged.
		return !(errors.Is(err, fs.ErrNotExist) && r.info == nil)
	}
	if r.info == nil {
		return true
	}
	return !os.SameFile(info, r.info) ||
		!info.ModTime().Equal(r.info.ModTime()) ||
		info.Size() != r.info.Size()
}
