package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vending-machine/config"
	"vending-machine/internal/adapter/cli"
	httpHandler "vending-machine/internal/adapter/http/handler"
	"vending-machine/internal/adapter/storage/csvfile"
	"vending-machine/internal/core/domain"
	"vending-machine/internal/core/ports"
	"vending-machine/internal/service"
	"vending-machine/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stockFile = "name,price,quantity\nCrisps,0.75,5\nMars Bar,0.70,0\nCoke,1.50,1\n"

func init() {
	gin.SetMode(gin.TestMode)
}

// testMachine wires the real CSV store, machine, recorder and ledger stand-in.
type testMachine struct {
	path    string
	store   *csvfile.InventoryStore
	machine *service.Machine
	sales   *inMemorySaleRepo
}

func newTestMachine(t *testing.T) *testMachine {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "items.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(stockFile), 0o644))

	log := logger.NewWithWriter("off", &bytes.Buffer{})
	store := openStore(t, path)
	sales := newInMemorySaleRepo()
	machine := service.NewMachine(store, domain.NewCoinCatalog(), service.NewSaleRecorder(sales, log), log)

	return &testMachine{path: path, store: store, machine: machine, sales: sales}
}

func openStore(t *testing.T, path string) *csvfile.InventoryStore {
	t.Helper()
	store := csvfile.NewInventoryStore(config.InventoryConfig{Path: path, MissingPolicy: config.MissingPolicyFail}, logger.NewWithWriter("off", &bytes.Buffer{}))
	_, err := store.Load(context.Background())
	require.NoError(t, err)
	return store
}

func (m *testMachine) session(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, cli.NewSession(m.machine, strings.NewReader(input), &out, logger.NewWithWriter("off", &out)).Run(context.Background()))
	return out.String()
}

// statusServer starts a status server watching the stock file, the way
// `vend serve` does.
func statusServer(t *testing.T, path string) *httptest.Server {
	t.Helper()
	reader := csvfile.NewReader(config.InventoryConfig{Path: path, MissingPolicy: config.MissingPolicyFail}, logger.NewWithWriter("off", &bytes.Buffer{}))
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Inventory:      reader,
		Coins:          domain.NewCoinCatalog().All(),
		HealthCheckers: []ports.HealthChecker{reader},
		Logger:         logger.NewWithWriter("off", &bytes.Buffer{}),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

type itemList struct {
	Data struct {
		Items []struct {
			Name     string `json:"name"`
			Quantity int    `json:"quantity"`
			InStock  bool   `json:"in_stock"`
		} `json:"items"`
		TotalUnits int    `json:"total_units"`
		TotalValue string `json:"total_value"`
	} `json:"data"`
}

func getItems(t *testing.T, srv *httptest.Server) itemList {
	t.Helper()
	resp, err := http.Get(srv.URL + "/api/v1/items")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body itemList
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestIntegration_PurchaseThenStatus(t *testing.T) {
	m := newTestMachine(t)

	before := getItems(t, statusServer(t, m.path))
	assert.Equal(t, 6, before.Data.TotalUnits)
	assert.Equal(t, "5.25", before.Data.TotalValue)

	out := m.session(t, "Coke\n1\nCrisps\n2\nq\n")
	assert.Contains(t, out, "Dispensing Coke. Change: £0.50")
	assert.Contains(t, out, "Dispensing Crisps. Change: £0.25")

	after := getItems(t, statusServer(t, m.path))
	assert.Equal(t, 4, after.Data.TotalUnits)
	assert.Equal(t, "3.00", after.Data.TotalValue)
	require.Len(t, after.Data.Items, 3)
	assert.Equal(t, "Coke", after.Data.Items[2].Name)
	assert.Equal(t, 0, after.Data.Items[2].Quantity)
	assert.False(t, after.Data.Items[2].InStock)
}

func TestIntegration_RunningServerFollowsSession(t *testing.T) {
	m := newTestMachine(t)
	srv := statusServer(t, m.path)

	before := getItems(t, srv)
	assert.Equal(t, 6, before.Data.TotalUnits)

	m.session(t, "Coke\n1\nCrisps\n2\nq\n")

	after := getItems(t, srv)
	assert.Equal(t, 4, after.Data.TotalUnits)
	assert.Equal(t, "3.00", after.Data.TotalValue)
	require.Len(t, after.Data.Items, 3)
	assert.False(t, after.Data.Items[2].InStock, "Coke is sold out")

	resp, err := http.Get(srv.URL + "/api/v1/items/Crisps")
	require.NoError(t, err)
	defer resp.Body.Close()
	var body struct {
		Data struct {
			Quantity int `json:"quantity"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 4, body.Data.Quantity)
}

func TestIntegration_SoldOutAfterLastUnit(t *testing.T) {
	m := newTestMachine(t)

	out := m.session(t, "Coke\n1\nCoke\nq\n")
	assert.Contains(t, out, "Dispensing Coke. Change: £0.50")
	assert.Contains(t, out, "Sorry, Coke is sold out. Refund: £0.00")

	resp, err := http.Get(statusServer(t, m.path).URL + "/api/v1/items/Coke")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Quantity int `json:"quantity"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 0, body.Data.Quantity)
}

func TestIntegration_EveryOutcomeIsRecorded(t *testing.T) {
	m := newTestMachine(t)

	// fulfilled, cancelled by FINISH, cancelled by the customer, sold out
	m.session(t, "Crisps\n3\n4\n6\nCoke\n3\n9\nCrisps\n2\nc\nMars Bar\nq\n")

	sales, summary, err := service.NewReportingService(m.sales).RecentSales(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, sales, 4)
	assert.Equal(t, domain.SalesSummary{
		Count:             4,
		Fulfilled:         1,
		Cancelled:         2,
		InsufficientStock: 1,
		Revenue:           75,
		Refunded:          150,
	}, summary)

	assert.Equal(t, "name,price,quantity\nCrisps,0.75,4\nMars Bar,0.70,0\nCoke,1.50,1\n", readFile(t, m.path))
}

func TestIntegration_RestockPersists(t *testing.T) {
	m := newTestMachine(t)

	_, err := m.machine.Restock(context.Background(), "Mars Bar", 12)
	require.NoError(t, err)

	out := m.session(t, "Mars Bar\n2\nq\n")
	assert.Contains(t, out, "Dispensing Mars Bar. Change: £0.30")

	// A restart sees both the restock and the sale.
	reloaded := openStore(t, m.path)
	item, err := reloaded.Get("Mars Bar")
	require.NoError(t, err)
	assert.Equal(t, 11, item.Quantity)
}

func TestIntegration_FailedRestockChangesNothing(t *testing.T) {
	m := newTestMachine(t)

	// A directory in the file's place makes the rename fail.
	require.NoError(t, os.Remove(m.path))
	require.NoError(t, os.MkdirAll(filepath.Join(m.path, "occupied"), 0o755))

	_, err := m.machine.Restock(context.Background(), "Mars Bar", 12)
	require.Error(t, err)

	item, err := m.store.Get("Mars Bar")
	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity)

	out := m.session(t, "Mars Bar\nq\n")
	assert.Contains(t, out, "Sorry, Mars Bar is sold out.")
}

func TestIntegration_HealthCheck(t *testing.T) {
	m := newTestMachine(t)
	srv := statusServer(t, m.path)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, os.Remove(m.path))

	resp2, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp2.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&body))
	assert.Equal(t, "unhealthy", body["status"])
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
