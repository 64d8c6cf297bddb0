package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"vending-machine/internal/core/domain"
	"vending-machine/pkg/apperror"
)

// header is always written on save. On load it is optional.
var header = []string{"name", "price", "quantity"}

const fieldCount = 3

// decode reads one item per record: name, price (pounds, two decimals), quantity.
func decode(r io.Reader) (*domain.Inventory, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // counted per record for a clearer error
	cr.TrimLeadingSpace = true

	inv := domain.NewInventory()
	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, apperror.ErrStorageCorrupt(err)
			}
			return nil, apperror.ErrStorageUnavailable(fmt.Errorf("read inventory: %w", err))
		}

		if first {
			first = false
			if isHeader(rec) {
				continue
			}
		}

		line, _ := cr.FieldPos(0)
		item, err := parseRecord(rec)
		if err != nil {
			return nil, apperror.ErrStorageCorrupt(fmt.Errorf("line %d: %w", line, err))
		}
		if err := inv.Add(item); err != nil {
			return nil, apperror.ErrStorageCorrupt(fmt.Errorf("line %d: %w", line, err))
		}
	}

	return inv, nil
}

func parseRecord(rec []string) (domain.Item, error) {
	if len(rec) != fieldCount {
		return domain.Item{}, fmt.Errorf("expected %d fields, got %d", fieldCount, len(rec))
	}

	name := strings.TrimSpace(rec[0])
	if err := domain.ValidateItemName(name); err != nil {
		return domain.Item{}, err
	}

	price, err := domain.ParseMoney(rec[1])
	if err != nil {
		return domain.Item{}, fmt.Errorf("item %q: %w", name, err)
	}
	if price < 0 {
		return domain.Item{}, fmt.Errorf("item %q: negative price %s", name, price)
	}

	rawQty := strings.TrimSpace(rec[2])
	if strings.HasPrefix(rawQty, "+") {
		return domain.Item{}, fmt.Errorf("item %q: quantity %q has a sign", name, rawQty)
	}
	qty, err := strconv.Atoi(rawQty)
	if err != nil {
		return domain.Item{}, fmt.Errorf("item %q: quantity: %w", name, err)
	}
	if qty < 0 {
		return domain.Item{}, fmt.Errorf("item %q: negative quantity %d", name, qty)
	}

	return domain.Item{Name: name, Price: price, Quantity: qty}, nil
}

func isHeader(rec []string) bool {
	if len(rec) != len(header) {
		return false
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimSpace(rec[i]), h) {
			return false
		}
	}
	return true
}

// encode writes the header and every item in inventory order.
func encode(w io.Writer, inv *domain.Inventory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, item := range inv.Items() {
		rec := []string{item.Name, item.Price.String(), strconv.Itoa(item.Quantity)}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
