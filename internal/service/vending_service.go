package service

import (
	"context"
	"fmt"
	"time"

	"vending-machine/internal/core/domain"
	"vending-machine/internal/core/ports"
	"vending-machine/pkg/apperror"

	"github.com/rs/zerolog"
)

// Machine binds purchase attempts to one inventory, coin catalog and sale recorder.
type Machine struct {
	store    ports.InventoryStore
	catalog  *domain.CoinCatalog
	recorder ports.SaleRecorder
	log      zerolog.Logger
	now      func() time.Time
}

// NewMachine creates a Machine. A nil recorder discards sales.
// The store is expected to be loaded already.
func NewMachine(
	store ports.InventoryStore,
	catalog *domain.CoinCatalog,
	recorder ports.SaleRecorder,
	log zerolog.Logger,
) *Machine {
	if recorder == nil {
		recorder = discardRecorder{}
	}
	return &Machine{
		store:    store,
		catalog:  catalog,
		recorder: recorder,
		log:      log,
		now:      time.Now,
	}
}

// NewTransaction starts a purchase attempt in SELECTING.
func (m *Machine) NewTransaction() *VendingTransaction {
	tx := domain.NewTransaction(m.now())
	m.log.Debug().Str("transaction_id", tx.ID.String()).Msg("transaction started")
	return &VendingTransaction{m: m, tx: tx}
}

// Begin implements ports.VendingService.
func (m *Machine) Begin() ports.Purchase {
	return m.NewTransaction()
}

// Items returns the current stock in inventory order.
func (m *Machine) Items() []domain.Item {
	return m.store.Snapshot().Items()
}

// Coins returns the accepted denominations plus FINISH.
func (m *Machine) Coins() []domain.Denomination {
	return m.catalog.All()
}

// InventoryPath returns the backing file of the inventory.
func (m *Machine) InventoryPath() string {
	return m.store.Path()
}

// Restock adds qty units to an item and saves the inventory. The change is
// made on a copy, so a failed save leaves the machine's stock as it was.
func (m *Machine) Restock(ctx context.Context, name string, qty int) (domain.Item, error) {
	if qty <= 0 {
		return domain.Item{}, apperror.ErrInvalidQuantity(qty)
	}
	inv := m.store.Snapshot()
	item, ok := inv.Get(name)
	if !ok {
		return domain.Item{}, apperror.ErrNotFound(name)
	}
	item.Quantity += qty
	inv.Set(item)

	if err := m.store.Save(ctx, inv); err != nil {
		return domain.Item{}, err
	}

	m.log.Info().
		Str("item", item.Name).
		Int("added", qty).
		Int("quantity", item.Quantity).
		Msg("item restocked")

	return item, nil
}

// VendingTransaction is the state machine for one purchase attempt.
// It is driven from a single goroutine.
type VendingTransaction struct {
	m  *Machine
	tx *domain.Transaction
}

// SelectItem chooses the item to buy. Unknown names leave the transaction in
// SELECTING so the caller can retry. A sold-out item ends it in INSUFFICIENT_STOCK.
func (t *VendingTransaction) SelectItem(ctx context.Context, name string) error {
	if t.tx.Status != domain.TransactionStatusSelecting {
		return apperror.ErrInvalidState("select an item", string(t.tx.Status))
	}

	item, err := t.m.store.Get(name)
	if err != nil {
		return err
	}

	t.tx.ItemName = item.Name
	t.tx.Price = item.Price

	if !item.InStock() {
		t.resolve(ctx, domain.TransactionStatusInsufficientStock)
		return nil
	}

	t.tx.Status = domain.TransactionStatusCollecting
	t.tx.Balance = 0
	return nil
}

// InsertCoin accepts one coin selection code. Unknown codes are rejected with
// no state change. The purchase completes as soon as the balance covers the
// price; FINISH below the price cancels it.
func (t *VendingTransaction) InsertCoin(ctx context.Context, code int) error {
	if t.tx.Status != domain.TransactionStatusCollecting {
		return apperror.ErrInvalidState("insert a coin", string(t.tx.Status))
	}

	d, err := t.m.catalog.Decode(code)
	if err != nil {
		return err
	}

	if t.m.catalog.IsTerminator(d) {
		if !t.tx.Covered() {
			t.tx.Refund = t.tx.Balance
			t.resolve(ctx, domain.TransactionStatusCancelled)
			return nil
		}
		return t.fulfil(ctx)
	}

	t.tx.Balance += d.Value
	t.tx.Coins = append(t.tx.Coins, d)

	t.m.log.Debug().
		Str("transaction_id", t.tx.ID.String()).
		Str("coin", d.Name).
		Str("balance", t.tx.Balance.String()).
		Msg("coin accepted")

	if t.tx.Covered() {
		return t.fulfil(ctx)
	}
	return nil
}

// Cancel abandons the purchase and refunds the balance. Cancelling twice is a no-op.
func (t *VendingTransaction) Cancel(ctx context.Context) error {
	switch t.tx.Status {
	case domain.TransactionStatusSelecting, domain.TransactionStatusCollecting:
		t.tx.Refund = t.tx.Balance
		t.resolve(ctx, domain.TransactionStatusCancelled)
		return nil
	case domain.TransactionStatusCancelled:
		return nil
	default:
		return apperror.ErrInvalidState("cancel", string(t.tx.Status))
	}
}

// fulfil takes one unit out of stock and persists the inventory. A failed
// decrement ends the transaction in INSUFFICIENT_STOCK with a fatal error.
func (t *VendingTransaction) fulfil(ctx context.Context) error {
	if _, err := t.m.store.DecrementStock(t.tx.ItemName); err != nil {
		t.tx.Refund = t.tx.Balance
		t.resolve(ctx, domain.TransactionStatusInsufficientStock)
		t.m.log.Error().Err(err).
			Str("transaction_id", t.tx.ID.String()).
			Str("item", t.tx.ItemName).
			Msg("stock exhausted at fulfilment")
		return apperror.Wrap(apperror.CodeOutOfStock,
			fmt.Sprintf("Item %q could not be dispensed", t.tx.ItemName), true, err)
	}

	t.tx.Change = t.tx.Balance - t.tx.Price
	t.resolve(ctx, domain.TransactionStatusFulfilled)

	// The item is already out of the machine; the decrement stands and the
	// next successful save carries it to disk.
	if err := t.m.store.Save(ctx, t.m.store.Snapshot()); err != nil {
		t.m.log.Error().Err(err).
			Str("transaction_id", t.tx.ID.String()).
			Str("path", t.m.store.Path()).
			Msg("failed to save inventory after sale")
		return err
	}
	return nil
}

func (t *VendingTransaction) resolve(ctx context.Context, status domain.TransactionStatus) {
	now := t.m.now()
	t.tx.Status = status
	t.tx.ResolvedAt = &now

	t.m.log.Info().
		Str("transaction_id", t.tx.ID.String()).
		Str("item", t.tx.ItemName).
		Str("status", string(status)).
		Str("balance", t.tx.Balance.String()).
		Str("change", t.tx.Change.String()).
		Str("refund", t.tx.Refund.String()).
		Msg("transaction resolved")

	t.m.recorder.Record(ctx, t.tx.Clone())
}

// ID returns the transaction identifier.
func (t *VendingTransaction) ID() string { return t.tx.ID.String() }

// Status returns the current state.
func (t *VendingTransaction) Status() domain.TransactionStatus { return t.tx.Status }

// Balance returns the value of coins accepted so far.
func (t *VendingTransaction) Balance() domain.Money { return t.tx.Balance }

// Change returns the change due. Zero unless FULFILLED.
func (t *VendingTransaction) Change() domain.Money { return t.tx.Change }

// Refund returns the balance handed back when the purchase did not complete.
func (t *VendingTransaction) Refund() domain.Money { return t.tx.Refund }

// Item returns the selected item name, empty before selection.
func (t *VendingTransaction) Item() string { return t.tx.ItemName }

// Snapshot returns a copy of the transaction state.
func (t *VendingTransaction) Snapshot() *domain.Transaction { return t.tx.Clone() }

type discardRecorder struct{}

func (discardRecorder) Record(context.Context, *domain.Transaction) {}
