package controllers

import (
	"net/http"

	json "github.com/goccy/go-json"

	"mintd/internal/journal"
	"mintd/internal/providers"
	"mintd/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.MintServiceInterface
	ledger  services.LedgerServiceInterface
	journal journal.JournalInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
}

func NewApiController(logger providers.Logger, service services.MintServiceInterface, ledger services.LedgerServiceInterface, jrnl journal.JournalInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		ledger:  ledger,
		journal: jrnl,
		cache:   cache,
		metrics: metrics,
	}
}

type claimPayload struct {
	Payer   string `json:"payer"`
	Owner   string `json:"owner"`
	Creator string `json:"creator"`
	Title   string `json:"title"`
}

type depositPayload struct {
	Wallet string `json:"wallet"`
	Amount uint64 `json:"amount"`
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// Claim drives the pay+issue+count transaction and journals the result.
func (ac *ApiController) Claim(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload claimPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.Payer == "" || payload.Owner == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	receipt, err := ac.service.Claim(services.ClaimRequest{
		Payer:   payload.Payer,
		Owner:   payload.Owner,
		Creator: payload.Creator,
		Title:   payload.Title,
	})
	if err != nil {
		ac.metrics.IncClaimFailures(services.ErrorCode(err))
		ac.logger.Warnf(providers.TypePost, "Claim by %s rejected: %s", payload.Payer, err)
		writeError(w, err)
		return
	}

	ac.metrics.IncClaimsTotal(receipt.Tier)
	if err := ac.journal.RecordClaim(&journal.ClaimRecord{
		Wallet:     receipt.Payer,
		Tier:       receipt.Tier,
		Price:      receipt.Price,
		TokenIndex: receipt.Index,
		URI:        receipt.URI,
		Title:      payload.Title,
	}); err != nil {
		ac.logger.Errorf(providers.TypePost, "Journal write failed for token %d: %s", receipt.Index, err)
	}

	ac.logger.Infof(providers.TypePost, "Claim by %s: token %d, tier %s, price %d", receipt.Payer, receipt.Index, receipt.Tier, receipt.Price)
	writeJSON(w, http.StatusCreated, receipt)
}

// Deposit credits a wallet in the embedded ledger; it stands in for a
// host-ledger transfer.
func (ac *ApiController) Deposit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload depositPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.Wallet == "" || payload.Amount == 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	balance, err := ac.ledger.Deposit(payload.Wallet, payload.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wallet": payload.Wallet, "balance": balance})
}

func (ac *ApiController) GetSale(w http.ResponseWriter, r *http.Request) {
	cfg := ac.service.GetConfig()
	if cfg == nil {
		writeError(w, services.ErrNotFound)
		return
	}
	ac.serveFromCacheOrCompute(w, "sale", func() (any, error) {
		return cfg, nil
	})
}

func (ac *ApiController) GetPriorityList(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "priority", func() (any, error) {
		list := ac.service.GetPriorityList()
		if list == nil {
			list = []string{}
		}
		return map[string]any{"wallets": list}, nil
	})
}

func (ac *ApiController) GetAllowListEntry(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	entry, ok := ac.service.GetAllowListEntry(user)
	if !ok {
		writeError(w, services.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (ac *ApiController) GetCounter(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("wallet")
	if wallet == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wallet": wallet, "claims": ac.service.GetCounter(wallet)})
}

func (ac *ApiController) GetBalance(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("wallet")
	if wallet == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"wallet": wallet, "balance": ac.ledger.GetBalance(wallet)})
}

func (ac *ApiController) GetAssets(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "assets", func() (any, error) {
		assets := ac.service.GetAssets()
		return map[string]any{"count": len(assets), "assets": assets}, nil
	})
}

// GetClaims reads the audit journal for one wallet.
func (ac *ApiController) GetClaims(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("wallet")
	if wallet == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	records, err := ac.journal.ClaimsByWallet(wallet)
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Journal read failed for %s: %s", wallet, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []*journal.ClaimRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"wallet": wallet, "claims": records})
}
