package csvfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"vending-machine/config"
	"vending-machine/internal/core/domain"
	"vending-machine/pkg/apperror"

	"github.com/rs/zerolog"
)

// readFile decodes the stock file at path and returns the file info it was
// read from. A missing file under the empty policy yields an empty inventory
// and nil info.
func readFile(path, policy string) (*domain.Inventory, fs.FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && policy == config.MissingPolicyEmpty {
			return domain.NewInventory(), nil, nil
		}
		return nil, nil, apperror.ErrStorageUnavailable(fmt.Errorf("open %s: %w", path, err))
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, apperror.ErrStorageUnavailable(fmt.Errorf("stat %s: %w", path, err))
	}

	inv, err := decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", path, err)
	}
	return inv, info, nil
}

// syncFile flushes a file to stable storage before it is renamed into place.
var syncFile = func(f *os.File) error { return f.Sync() }

// InventoryStore implements ports.InventoryStore on a CSV file.
// It is not safe for concurrent use; the machine runs one session at a time.
type InventoryStore struct {
	path   string
	policy string
	inv    *domain.Inventory
	log    zerolog.Logger
}

// NewInventoryStore creates a store for cfg.Path. Nothing is read until Load.
func NewInventoryStore(cfg config.InventoryConfig, log zerolog.Logger) *InventoryStore {
	path := cfg.Path
	if path == "" {
		path = config.DefaultInventoryPath
	}
	policy := cfg.MissingPolicy
	if policy == "" {
		policy = config.MissingPolicyEmpty
	}
	return &InventoryStore{
		path:   path,
		policy: policy,
		inv:    domain.NewInventory(),
		log:    log,
	}
}

// Path returns the backing file location.
func (s *InventoryStore) Path() string {
	return s.path
}

// Load reads the whole file into memory and returns a copy of it.
func (s *InventoryStore) Load(ctx context.Context) (*domain.Inventory, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperror.ErrStorageUnavailable(err)
	}

	inv, info, err := readFile(s.path, s.policy)
	if err != nil {
		return nil, err
	}
	if info == nil {
		s.log.Warn().Str("path", s.path).Msg("inventory file not found, starting empty")
	}
	s.inv = inv

	s.log.Info().
		Str("path", s.path).
		Int("items", inv.Len()).
		Msg("inventory loaded")

	return inv.Clone(), nil
}

// Get looks up an item by name.
func (s *InventoryStore) Get(name string) (domain.Item, error) {
	item, ok := s.inv.Get(name)
	if !ok {
		return domain.Item{}, apperror.ErrNotFound(name)
	}
	return item, nil
}

// DecrementStock takes one unit of name out of stock. Nothing changes on error.
func (s *InventoryStore) DecrementStock(name string) (domain.Item, error) {
	item, ok := s.inv.Get(name)
	if !ok {
		return domain.Item{}, apperror.ErrNotFound(name)
	}
	if !item.InStock() {
		return item, apperror.ErrOutOfStock(name)
	}
	item.Quantity--
	s.inv.Set(item)
	return item, nil
}

// Snapshot returns a copy of the in-memory inventory.
func (s *InventoryStore) Snapshot() *domain.Inventory {
	return s.inv.Clone()
}

// Save replaces the backing file with inv. The new content is written to a
// temp file in the same directory and renamed over the target, so the old
// file survives any failure. On success inv becomes the in-memory inventory.
func (s *InventoryStore) Save(ctx context.Context, inv *domain.Inventory) error {
	if inv == nil {
		return apperror.InternalError(fmt.Errorf("save: nil inventory"))
	}
	if err := ctx.Err(); err != nil {
		return apperror.ErrStorageWriteFailure(err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperror.ErrStorageWriteFailure(fmt.Errorf("create directory %s: %w", dir, err))
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return apperror.ErrStorageWriteFailure(fmt.Errorf("create temp file: %w", err))
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName) //nolint:errcheck
		}
	}()

	if err := writeAndClose(tmp, inv); err != nil {
		return apperror.ErrStorageWriteFailure(fmt.Errorf("write %s: %w", tmpName, err))
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return apperror.ErrStorageWriteFailure(fmt.Errorf("replace %s: %w", s.path, err))
	}
	committed = true
	s.inv = inv.Clone()

	s.log.Debug().
		Str("path", s.path).
		Int("items", inv.Len()).
		Msg("inventory saved")

	return nil
}

func writeAndClose(f *os.File, inv *domain.Inventory) error {
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return err
	}
	if err := encode(f, inv); err != nil {
		f.Close()
		return err
	}
	if err := syncFile(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
