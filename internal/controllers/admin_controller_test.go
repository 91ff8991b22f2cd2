package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mintd/internal/services"
	"mintd/internal/testutil"
)

func newTestAdminController(t *testing.T) (*AdminController, *testutil.MockMintService, *testutil.MockLogger) {
	t.Helper()
	service := &testutil.MockMintService{}
	logger := &testutil.MockLogger{}
	return NewAdminController(logger, service), service, logger
}

func TestAdminInitialize(t *testing.T) {
	c, service, _ := newTestAdminController(t)

	rr := postJSON(t, c.Initialize, "/initialize", map[string]any{
		"initializer": "admin",
		"creator":     "creator",
		"max_supply":  100,
		"og_max":      1,
		"og_price":    50,
	})

	assert.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, service.InitializeCalls, 1)
	assert.Equal(t, "admin", service.InitializeCalls[0].Initializer)
	assert.Equal(t, uint64(100), service.InitializeCalls[0].MaxSupply)
	assert.Equal(t, uint64(50), service.InitializeCalls[0].OGPrice)
}

func TestAdminInitialize_MissingInitializer(t *testing.T) {
	c, service, _ := newTestAdminController(t)

	rr := postJSON(t, c.Initialize, "/initialize", map[string]any{"max_supply": 100})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, service.InitializeCalls)
}

func TestAdminInitialize_AlreadyInitialized(t *testing.T) {
	c, service, _ := newTestAdminController(t)
	service.InitializeErr = services.ErrAlreadyInitialized

	rr := postJSON(t, c.Initialize, "/initialize", map[string]any{"initializer": "admin"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "already_initialized", body["error"])
}

func TestAdminAddPriorityList(t *testing.T) {
	c, service, _ := newTestAdminController(t)

	rr := postJSON(t, c.AddPriorityList, "/admin/priority/add", map[string]any{
		"caller":  "admin",
		"wallets": []string{"w1", "w2"},
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, service.PriorityAdds, 1)
	assert.Equal(t, []string{"w1", "w2"}, service.PriorityAdds[0])
}

func TestAdminAddPriorityList_NotAuthorized(t *testing.T) {
	c, service, logger := newTestAdminController(t)
	service.PriorityErr = services.ErrNotAuthorized

	rr := postJSON(t, c.AddPriorityList, "/admin/priority/add", map[string]any{
		"caller":  "stranger",
		"wallets": []string{"w1"},
	})

	assert.Equal(t, http.StatusForbidden, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "not_authorized", body["error"])
	assert.NotEmpty(t, logger.Logs)
}

func TestAdminRemovePriorityList(t *testing.T) {
	c, service, _ := newTestAdminController(t)

	rr := postJSON(t, c.RemovePriorityList, "/admin/priority/remove", map[string]any{
		"caller":  "admin",
		"wallets": []string{"w1"},
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, service.PriorityRemoves, 1)
}

func TestAdminGrantRevokeAllowList(t *testing.T) {
	c, service, _ := newTestAdminController(t)

	rr := postJSON(t, c.GrantAllowList, "/admin/allowlist/grant", map[string]any{
		"caller": "admin",
		"user":   "alice",
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"alice"}, service.GrantCalls)

	rr = postJSON(t, c.RevokeAllowList, "/admin/allowlist/revoke", map[string]any{
		"caller": "admin",
		"user":   "alice",
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"alice"}, service.RevokeCalls)
}

func TestAdminGrantAllowList_Conflict(t *testing.T) {
	c, service, _ := newTestAdminController(t)
	service.AllowErr = services.ErrAlreadyExists

	rr := postJSON(t, c.GrantAllowList, "/admin/allowlist/grant", map[string]any{
		"caller": "admin",
		"user":   "alice",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestAdminUpdatePriceAndAmount(t *testing.T) {
	c, _, _ := newTestAdminController(t)

	rr := postJSON(t, c.UpdatePrice, "/admin/price", map[string]any{
		"caller": "admin", "og": 50, "wl": 75, "public": 100,
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = postJSON(t, c.UpdateAmount, "/admin/amount", map[string]any{
		"caller": "admin", "og": 1, "wl": 2, "public": 3,
	})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminSetStage(t *testing.T) {
	c, _, _ := newTestAdminController(t)

	rr := postJSON(t, c.SetStage, "/admin/stage", map[string]any{"caller": "admin", "stage": 1})
	assert.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestAdminSetURIAndFreeze(t *testing.T) {
	c, _, _ := newTestAdminController(t)

	rr := postJSON(t, c.SetURI, "/admin/uri", map[string]any{"caller": "admin", "uri": "https://meta.example/"})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = postJSON(t, c.SetFreeze, "/admin/freeze", map[string]any{"caller": "admin", "frozen": true})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdmin_BadJSON(t *testing.T) {
	c, service, _ := newTestAdminController(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/stage", bytes.NewReader([]byte("{")))
	rr := httptest.NewRecorder()
	c.SetStage(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, service.PriorityAdds)
}
