package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mintd/internal/journal"
	"mintd/internal/models"
	"mintd/internal/providers"
	"mintd/internal/services"
	"mintd/internal/structures"
	"mintd/internal/testutil"
)

type apiTestDeps struct {
	service *testutil.MockMintService
	ledger  *testutil.MockLedgerService
	journal *testutil.MockJournal
	cache   *testutil.MockCache
	logger  *testutil.MockLogger
}

func newTestApiController(t *testing.T) (*ApiController, *apiTestDeps) {
	t.Helper()
	deps := &apiTestDeps{
		service: &testutil.MockMintService{},
		ledger:  testutil.NewMockLedgerService(),
		journal: &testutil.MockJournal{},
		cache:   testutil.NewMockCache(),
		logger:  &testutil.MockLogger{},
	}
	metrics := providers.NewMetricsProvider(&structures.Config{}, deps.service)
	ac := NewApiController(deps.logger, deps.service, deps.ledger, deps.journal, deps.cache, metrics)
	return ac, deps
}

func postJSON(t *testing.T, handler http.HandlerFunc, url string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestClaim_Success(t *testing.T) {
	ac, deps := newTestApiController(t)
	deps.service.ClaimReceipt = &services.ClaimReceipt{
		Index: 4,
		URI:   "https://meta.example/4.json",
		Tier:  "og",
		Price: 50,
		Payer: "alice",
	}

	rr := postJSON(t, ac.Claim, "/claim", map[string]any{
		"payer":   "alice",
		"owner":   "admin",
		"creator": "creator",
		"title":   "Unit #4",
	})

	assert.Equal(t, http.StatusCreated, rr.Code)

	var receipt services.ClaimReceipt
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &receipt))
	assert.Equal(t, uint64(4), receipt.Index)
	assert.Equal(t, "og", receipt.Tier)

	require.Len(t, deps.service.ClaimCalls, 1)
	assert.Equal(t, "alice", deps.service.ClaimCalls[0].Payer)

	// The successful claim is journaled.
	require.Len(t, deps.journal.Records, 1)
	assert.Equal(t, "alice", deps.journal.Records[0].Wallet)
	assert.Equal(t, uint64(4), deps.journal.Records[0].TokenIndex)
	assert.Equal(t, "Unit #4", deps.journal.Records[0].Title)
}

func TestClaim_BadJSON(t *testing.T) {
	ac, deps := newTestApiController(t)

	req := httptest.NewRequest(http.MethodPost, "/claim", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	ac.Claim(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, deps.service.ClaimCalls)
}

func TestClaim_MissingFields(t *testing.T) {
	ac, deps := newTestApiController(t)

	rr := postJSON(t, ac.Claim, "/claim", map[string]any{"payer": "alice"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = postJSON(t, ac.Claim, "/claim", map[string]any{"owner": "admin"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	assert.Empty(t, deps.service.ClaimCalls)
}

func TestClaim_ServiceErrorMapsToStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{services.ErrInsufficientFunds, http.StatusPaymentRequired, "insufficient_funds"},
		{services.ErrNotAllowed, http.StatusForbidden, "not_allowed"},
		{services.ErrNotActive, http.StatusForbidden, "not_active"},
		{services.ErrNotFound, http.StatusNotFound, "not_found"},
	}

	for _, tc := range cases {
		ac, deps := newTestApiController(t)
		deps.service.ClaimErr = tc.err

		rr := postJSON(t, ac.Claim, "/claim", map[string]any{"payer": "alice", "owner": "admin"})
		assert.Equal(t, tc.status, rr.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, tc.code, body["error"])
		assert.Empty(t, deps.journal.Records)
	}
}

func TestClaim_JournalFailureDoesNotFailRequest(t *testing.T) {
	ac, deps := newTestApiController(t)
	deps.service.ClaimReceipt = &services.ClaimReceipt{Index: 0, Tier: "public", Payer: "alice"}
	deps.journal.RecordErr = assert.AnError

	rr := postJSON(t, ac.Claim, "/claim", map[string]any{"payer": "alice", "owner": "admin"})

	// The claim is committed; the journal miss is only logged.
	assert.Equal(t, http.StatusCreated, rr.Code)
	errorLogged := false
	for _, entry := range deps.logger.Logs {
		if entry.Level == "error" {
			errorLogged = true
		}
	}
	assert.True(t, errorLogged)
}

func TestDeposit_Success(t *testing.T) {
	ac, deps := newTestApiController(t)

	rr := postJSON(t, ac.Deposit, "/ledger/deposit", map[string]any{"wallet": "alice", "amount": 100})
	assert.Equal(t, http.StatusOK, rr.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "alice", body["wallet"])
	assert.Equal(t, float64(100), body["balance"])
	assert.Equal(t, uint64(100), deps.ledger.GetBalance("alice"))
}

func TestDeposit_Invalid(t *testing.T) {
	ac, _ := newTestApiController(t)

	rr := postJSON(t, ac.Deposit, "/ledger/deposit", map[string]any{"wallet": "", "amount": 100})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = postJSON(t, ac.Deposit, "/ledger/deposit", map[string]any{"wallet": "alice", "amount": 0})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeposit_LedgerError(t *testing.T) {
	ac, deps := newTestApiController(t)
	deps.ledger.DepositErr = services.ErrNotAllowed

	rr := postJSON(t, ac.Deposit, "/ledger/deposit", map[string]any{"wallet": "alice", "amount": 5})
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestGetSale_NotInitialized(t *testing.T) {
	ac, _ := newTestApiController(t)

	req := httptest.NewRequest(http.MethodGet, "/sale", nil)
	rr := httptest.NewRecorder()
	ac.GetSale(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetSale_ReturnsConfig(t *testing.T) {
	ac, deps := newTestApiController(t)
	deps.service.Config = &models.SaleConfig{
		Admin:     "admin",
		MaxSupply: 100,
		CurNum:    7,
		CurStage:  models.StagePublic,
	}

	req := httptest.NewRequest(http.MethodGet, "/sale", nil)
	rr := httptest.NewRecorder()
	ac.GetSale(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var cfg models.SaleConfig
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cfg))
	assert.Equal(t, uint64(7), cfg.CurNum)

	// Second request is served from cache.
	_, cached := deps.cache.Get("sale")
	assert.True(t, cached)
}

func TestGetPriorityList_EmptyByDefault(t *testing.T) {
	ac, _ := newTestApiController(t)

	req := httptest.NewRequest(http.MethodGet, "/sale/priority", nil)
	rr := httptest.NewRecorder()
	ac.GetPriorityList(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string][]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.NotNil(t, body["wallets"])
	assert.Empty(t, body["wallets"])
}

func TestGetAllowListEntry(t *testing.T) {
	ac, deps := newTestApiController(t)
	deps.service.AllowEntries = map[string]*models.AllowListEntry{
		"alice": {User: "alice", Initializer: "admin", Count: 1},
	}

	req := httptest.NewRequest(http.MethodGet, "/sale/allowlist?user=alice", nil)
	rr := httptest.NewRecorder()
	ac.GetAllowListEntry(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var entry models.AllowListEntry
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entry))
	assert.Equal(t, "alice", entry.User)
}

func TestGetAllowListEntry_Missing(t *testing.T) {
	ac, _ := newTestApiController(t)

	req := httptest.NewRequest(http.MethodGet, "/sale/allowlist?user=ghost", nil)
	rr := httptest.NewRecorder()
	ac.GetAllowListEntry(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/sale/allowlist", nil)
	rr = httptest.NewRecorder()
	ac.GetAllowListEntry(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetCounter(t *testing.T) {
	ac, deps := newTestApiController(t)
	deps.service.Counters = map[string]uint64{"alice": 2}

	req := httptest.NewRequest(http.MethodGet, "/sale/counter?wallet=alice", nil)
	rr := httptest.NewRecorder()
	ac.GetCounter(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["claims"])
}

func TestGetCounter_NoWallet(t *testing.T) {
	ac, _ := newTestApiController(t)

	req := httptest.NewRequest(http.MethodGet, "/sale/counter", nil)
	rr := httptest.NewRecorder()
	ac.GetCounter(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetBalance(t *testing.T) {
	ac, deps := newTestApiController(t)
	_, err := deps.ledger.Deposit("alice", 42)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/ledger/balance?wallet=alice", nil)
	rr := httptest.NewRecorder()
	ac.GetBalance(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, float64(42), body["balance"])
}

func TestGetAssets(t *testing.T) {
	ac, deps := newTestApiController(t)
	deps.service.Assets = []*models.Asset{
		{Index: 0, Owner: "alice", URI: "https://meta.example/0.json"},
		{Index: 1, Owner: "bob", URI: "https://meta.example/1.json"},
	}

	req := httptest.NewRequest(http.MethodGet, "/sale/assets", nil)
	rr := httptest.NewRecorder()
	ac.GetAssets(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Count  int             `json:"count"`
		Assets []*models.Asset `json:"assets"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Assets, 2)
	assert.Equal(t, "bob", body.Assets[1].Owner)
}

func TestGetClaims(t *testing.T) {
	ac, deps := newTestApiController(t)
	require.NoError(t, deps.journal.RecordClaim(&journal.ClaimRecord{Wallet: "alice", TokenIndex: 3, Tier: "og"}))

	req := httptest.NewRequest(http.MethodGet, "/sale/claims?wallet=alice", nil)
	rr := httptest.NewRecorder()
	ac.GetClaims(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Wallet string                 `json:"wallet"`
		Claims []*journal.ClaimRecord `json:"claims"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Claims, 1)
	assert.Equal(t, uint64(3), body.Claims[0].TokenIndex)
}

func TestGetClaims_NoWallet(t *testing.T) {
	ac, _ := newTestApiController(t)

	req := httptest.NewRequest(http.MethodGet, "/sale/claims", nil)
	rr := httptest.NewRecorder()
	ac.GetClaims(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
