package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vending-machine/config"
	"vending-machine/internal/adapter/storage/csvfile"
	"vending-machine/internal/core/domain"
	"vending-machine/internal/core/ports/mocks"
	"vending-machine/internal/service"
	"vending-machine/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const stockFile = "name,price,quantity\nCrisps,0.75,5\nMars Bar,0.70,0\nCoke,1.50,1\n"

type sessionEnv struct {
	path  string
	store *csvfile.InventoryStore
}

func newSessionEnv(t *testing.T) *sessionEnv {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.csv")
	require.NoError(t, os.WriteFile(path, []byte(stockFile), 0o644))

	store := csvfile.NewInventoryStore(config.InventoryConfig{Path: path}, zerolog.Nop())
	_, err := store.Load(context.Background())
	require.NoError(t, err)
	return &sessionEnv{path: path, store: store}
}

func (e *sessionEnv) run(t *testing.T, input string) string {
	t.Helper()
	machine := service.NewMachine(e.store, domain.NewCoinCatalog(), nil, zerolog.Nop())
	var out bytes.Buffer
	err := NewSession(machine, strings.NewReader(input), &out, zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)
	return out.String()
}

func (e *sessionEnv) fileContent(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(e.path)
	require.NoError(t, err)
	return string(data)
}

func TestSession_BuyWithChange(t *testing.T) {
	env := newSessionEnv(t)

	out := env.run(t, "Coke\n1\nq\n")

	assert.Contains(t, out, "Coke costs £1.50.")
	assert.Contains(t, out, "1=£2.00")
	assert.Contains(t, out, "9=FINISH")
	assert.Contains(t, out, "Dispensing Coke. Change: £0.50")
	assert.Contains(t, out, "Goodbye.")
	assert.Contains(t, env.fileContent(t), "Coke,1.50,0\n")
}

func TestSession_ExactPayment(t *testing.T) {
	env := newSessionEnv(t)

	out := env.run(t, "Crisps\n3\n4\n6\n")

	assert.Contains(t, out, "Dispensing Crisps. Change: £0.00")
	assert.Contains(t, env.fileContent(t), "Crisps,0.75,4\n")
}

func TestSession_CancelRefunds(t *testing.T) {
	env := newSessionEnv(t)

	out := env.run(t, "Coke\n2\nc\nq\n")

	assert.Contains(t, out, "Balance £1.00.")
	assert.Contains(t, out, "Purchase cancelled. Refund: £1.00")
	assert.Equal(t, stockFile, env.fileContent(t))
}

func TestSession_FinishBelowPrice(t *testing.T) {
	env := newSessionEnv(t)

	out := env.run(t, "Coke\n3\n9\nq\n")

	assert.Contains(t, out, "Purchase cancelled. Refund: £0.50")
	assert.Equal(t, stockFile, env.fileContent(t))
}

func TestSession_SoldOut(t *testing.T) {
	env := newSessionEnv(t)

	out := env.run(t, "Mars Bar\nq\n")

	assert.Contains(t, out, "sold out")
	assert.Contains(t, out, "Sorry, Mars Bar is sold out. Refund: £0.00")
	assert.NotContains(t, out, "Mars Bar costs")
}

func TestSession_RecoverableErrorsRetry(t *testing.T) {
	env := newSessionEnv(t)

	out := env.run(t, "Tea\nCoke\n42\nabc\n1\nq\n")

	assert.Contains(t, out, `Error: Item "Tea" not found`)
	assert.Contains(t, out, "Error: Unknown coin selection 42")
	assert.Contains(t, out, `"abc" is not a coin selection.`)
	assert.Contains(t, out, "Dispensing Coke. Change: £0.50")
	assert.NotContains(t, out, "Please report this fault")
}

func TestSession_SecondPurchaseSeesNewStock(t *testing.T) {
	env := newSessionEnv(t)

	out := env.run(t, "Coke\n1\nCoke\nq\n")

	assert.Contains(t, out, "Dispensing Coke. Change: £0.50")
	assert.Contains(t, out, "Sorry, Coke is sold out. Refund: £0.00")
}

func TestSession_EOFWhileCollectingRefunds(t *testing.T) {
	env := newSessionEnv(t)

	out := env.run(t, "Coke\n2")

	assert.Contains(t, out, "Purchase cancelled. Refund: £1.00")
	assert.Equal(t, stockFile, env.fileContent(t))
}

func TestSession_EOFWhileSelecting(t *testing.T) {
	env := newSessionEnv(t)

	out := env.run(t, "")

	assert.Contains(t, out, "Vending machine ready. Stock file: "+env.path)
	assert.Contains(t, out, "ITEM")
}

func TestSession_FatalErrorStartsFreshTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockVendingService(ctrl)
	first := mocks.NewMockPurchase(ctrl)
	second := mocks.NewMockPurchase(ctrl)

	selecting := &domain.Transaction{Status: domain.TransactionStatusSelecting}
	svc.EXPECT().InventoryPath().Return("data/items.csv").AnyTimes()
	svc.EXPECT().Items().Return(nil).Times(2)
	gomock.InOrder(
		svc.EXPECT().Begin().Return(first),
		svc.EXPECT().Begin().Return(second),
	)

	first.EXPECT().Snapshot().Return(selecting).AnyTimes()
	first.EXPECT().SelectItem(gomock.Any(), "Coke").
		Return(apperror.ErrStorageUnavailable(errors.New("disk gone")))
	second.EXPECT().Snapshot().Return(selecting).AnyTimes()

	var out bytes.Buffer
	err := NewSession(svc, strings.NewReader("Coke\nq\n"), &out, zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Error: Inventory storage is unavailable")
	assert.Contains(t, out.String(), "Please report this fault. Stock file: data/items.csv")
	assert.Contains(t, out.String(), "Goodbye.")
}

func TestSession_ContextCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockVendingService(ctrl)
	svc.EXPECT().InventoryPath().Return("data/items.csv")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewSession(svc, strings.NewReader(""), &bytes.Buffer{}, zerolog.Nop()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
