package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"vending-machine/internal/core/domain"
	"vending-machine/internal/core/ports/mocks"
	"vending-machine/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func resolvedTransaction() *domain.Transaction {
	now := time.Now()
	return &domain.Transaction{
		ID:         uuid.New(),
		ItemName:   "Coke",
		Price:      150,
		Balance:    200,
		Change:     50,
		Status:     domain.TransactionStatusFulfilled,
		StartedAt:  now,
		ResolvedAt: &now,
	}
}

func TestSaleRecorder_Record_PersistsToRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockSaleRepository(ctrl)
	recorder := NewSaleRecorder(mockRepo, newTestLogger())
	tx := resolvedTransaction()

	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, sale *domain.Sale) error {
			assert.Equal(t, tx.ID, sale.TransactionID)
			assert.Equal(t, "Coke", sale.ItemName)
			assert.Equal(t, domain.Money(200), sale.Paid)
			assert.Equal(t, domain.Money(50), sale.Change)
			assert.Equal(t, domain.TransactionStatusFulfilled, sale.Status)
			assert.Equal(t, time.UTC, sale.CreatedAt.Location())
			return nil
		},
	)

	recorder.Record(context.Background(), tx)
}

func TestSaleRecorder_Record_NilRepo(t *testing.T) {
	var buf bytes.Buffer
	recorder := NewSaleRecorder(nil, logger.NewWithWriter("info", &buf))

	assert.NotPanics(t, func() {
		recorder.Record(context.Background(), resolvedTransaction())
	})
	assert.Contains(t, buf.String(), `"message":"sale recorded"`)
	assert.Contains(t, buf.String(), `"change":"0.50"`)
}

func TestSaleRecorder_Record_RepoErrorIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockSaleRepository(ctrl)

	var buf bytes.Buffer
	recorder := NewSaleRecorder(mockRepo, logger.NewWithWriter("info", &buf))

	mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	recorder.Record(context.Background(), resolvedTransaction())
	assert.Contains(t, buf.String(), "failed to persist sale")
	assert.Contains(t, buf.String(), "connection refused")
}
