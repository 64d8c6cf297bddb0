package csvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vending-machine/config"
	"vending-machine/internal/core/domain"
	"vending-machine/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "name,price,quantity\nCrisps,0.75,5\nMars Bar,0.70,0\nCoke,1.50,3\n"

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newStore(path, policy string) *InventoryStore {
	return NewInventoryStore(config.InventoryConfig{Path: path, MissingPolicy: policy}, zerolog.Nop())
}

func loadedStore(t *testing.T, content string) *InventoryStore {
	t.Helper()
	store := newStore(writeFile(t, content), config.MissingPolicyEmpty)
	_, err := store.Load(context.Background())
	require.NoError(t, err)
	return store
}

func TestInventoryStore_Load(t *testing.T) {
	store := loadedStore(t, sampleCSV)

	items := store.Snapshot().Items()
	require.Len(t, items, 3)
	assert.Equal(t, domain.Item{Name: "Crisps", Price: 75, Quantity: 5}, items[0])
	assert.Equal(t, domain.Item{Name: "Mars Bar", Price: 70, Quantity: 0}, items[1])
	assert.Equal(t, domain.Item{Name: "Coke", Price: 150, Quantity: 3}, items[2])
}

func TestInventoryStore_LoadWithoutHeader(t *testing.T) {
	store := loadedStore(t, "Crisps,0.75,5\nCoke,1.5,3\n")

	item, err := store.Get("Coke")
	require.NoError(t, err)
	assert.Equal(t, domain.Money(150), item.Price)
	assert.Equal(t, 2, store.Snapshot().Len())
}

func TestInventoryStore_LoadEmptyFile(t *testing.T) {
	store := loadedStore(t, "")
	assert.Equal(t, 0, store.Snapshot().Len())
}

func TestInventoryStore_LoadCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"too few fields", "Crisps,0.75\n"},
		{"too many fields", "Crisps,0.75,5,extra\n"},
		{"bad price", "Crisps,cheap,5\n"},
		{"three decimal price", "Crisps,0.755,5\n"},
		{"negative price", "Crisps,-0.75,5\n"},
		{"bad quantity", "Crisps,0.75,five\n"},
		{"negative quantity", "Crisps,0.75,-1\n"},
		{"empty name", ",0.75,1\n"},
		{"duplicate name", "Crisps,0.75,5\nCrisps,0.80,1\n"},
		{"unbalanced quote", "\"Crisps,0.75,5\n"},
		{"quoted comma in name", "\"Crisps, salted\",0.75,5\n"},
		{"name too long", strings.Repeat("a", domain.MaxItemNameLen+1) + ",0.75,5\n"},
		{"trailing zero past pence", "Crisps,0.500,5\n"},
		{"exponent price", "Coke,1e2,3\n"},
		{"signed price", "Crisps,+1.50,5\n"},
		{"fractional exponent price", "Crisps,1.5e-1,5\n"},
		{"signed quantity", "Crisps,0.75,+5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore(writeFile(t, tt.content), config.MissingPolicyEmpty)

			inv, err := store.Load(context.Background())
			assert.Nil(t, inv)
			assert.True(t, apperror.Is(err, apperror.CodeStorageCorrupt), "got %v", err)
			assert.True(t, apperror.IsFatal(err))
		})
	}
}

func TestInventoryStore_LoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.csv")

	t.Run("empty policy starts empty", func(t *testing.T) {
		store := newStore(path, config.MissingPolicyEmpty)
		inv, err := store.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, inv.Len())
	})

	t.Run("fail policy refuses", func(t *testing.T) {
		store := newStore(path, config.MissingPolicyFail)
		_, err := store.Load(context.Background())
		assert.True(t, apperror.Is(err, apperror.CodeStorageUnavailable))
	})
}

func TestInventoryStore_RoundTrip(t *testing.T) {
	path := writeFile(t, sampleCSV)
	store := newStore(path, config.MissingPolicyEmpty)
	inv, err := store.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), inv))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleCSV, string(data))
}

func TestInventoryStore_SaveNormalisesPrices(t *testing.T) {
	path := writeFile(t, "Coke,1.5,3\n")
	store := newStore(path, config.MissingPolicyEmpty)
	inv, err := store.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), inv))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name,price,quantity\nCoke,1.50,3\n", string(data))
}

func TestInventoryStore_SaveCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "items.csv")
	store := newStore(path, config.MissingPolicyEmpty)
	_, err := store.Load(context.Background())
	require.NoError(t, err)

	inv := domain.NewInventory()
	require.NoError(t, inv.Add(domain.Item{Name: "Water", Price: 100, Quantity: 2}))
	require.NoError(t, store.Save(context.Background(), inv))

	reloaded := newStore(path, config.MissingPolicyFail)
	got, err := reloaded.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, inv.Items(), got.Items())
}

func TestInventoryStore_DecrementStock(t *testing.T) {
	store := loadedStore(t, "Coke,1.50,2\n")

	item, err := store.DecrementStock("Coke")
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	item, err = store.DecrementStock("Coke")
	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity)

	_, err = store.DecrementStock("Coke")
	assert.True(t, apperror.Is(err, apperror.CodeOutOfStock))

	got, err := store.Get("Coke")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity, "quantity never goes negative")
}

func TestInventoryStore_DecrementUnknown(t *testing.T) {
	store := loadedStore(t, sampleCSV)

	_, err := store.DecrementStock("Tea")
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestInventoryStore_SnapshotIsCopy(t *testing.T) {
	store := loadedStore(t, sampleCSV)

	snap := store.Snapshot()
	snap.Set(domain.Item{Name: "Crisps", Price: 1, Quantity: 99})

	item, err := store.Get("Crisps")
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
}

func TestInventoryStore_SaveFailureKeepsOriginal(t *testing.T) {
	path := writeFile(t, sampleCSV)
	store := newStore(path, config.MissingPolicyEmpty)
	inv, err := store.Load(context.Background())
	require.NoError(t, err)

	orig := syncFile
	syncFile = func(*os.File) error { return errors.New("device full") }
	t.Cleanup(func() { syncFile = orig })

	inv.Set(domain.Item{Name: "Crisps", Price: 75, Quantity: 4})
	err = store.Save(context.Background(), inv)
	assert.True(t, apperror.Is(err, apperror.CodeStorageWriteFailure))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sampleCSV, string(data))

	item, err := store.Get("Crisps")
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity, "memory still matches the file")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file is cleaned up")
}

func TestInventoryStore_SaveOverDirectoryFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	require.NoError(t, os.MkdirAll(filepath.Join(path, "occupied"), 0o755))
	store := newStore(path, config.MissingPolicyEmpty)

	err := store.Save(context.Background(), domain.NewInventory())
	assert.True(t, apperror.Is(err, apperror.CodeStorageWriteFailure))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInventoryStore_DefaultPath(t *testing.T) {
	store := NewInventoryStore(config.InventoryConfig{}, zerolog.Nop())
	assert.Equal(t, config.DefaultInventoryPath, store.Path())
}
