package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"checkpoint-tracker/internal/core/cache"
	"checkpoint-tracker/internal/features/ledger/adapters"
	"checkpoint-tracker/internal/features/ledger/domain"
	"checkpoint-tracker/internal/features/ledger/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerHandler_GetEntries(t *testing.T) {
	l := adapters.NewMemoryLedger()
	_, err := l.Append(context.Background(), domain.AppendRequest{ShipmentID: "S1", LocationCode: "DEL", Kind: domain.KindGenesis})
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/ledger/:shipmentId", NewLedgerHandler(service.NewLedgerService(l, time.Second)).GetEntries)

	resp, err := app.Test(httptest.NewRequest("GET", "/ledger/S1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out EntriesResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "S1", out.ShipmentID)
	require.Len(t, out.Entries, 1)
	assert.Equal(t, domain.KindGenesis, out.Entries[0].Kind)
}

func TestLedgerHandler_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	defer c.Close()
	mr.Close()

	app := fiber.New()
	app.Get("/ledger/:shipmentId", NewLedgerHandler(service.NewLedgerService(adapters.NewRedisLedger(c), time.Second)).GetEntries)

	resp, err := app.Test(httptest.NewRequest("GET", "/ledger/S1", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
