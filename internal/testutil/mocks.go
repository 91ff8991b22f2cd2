package testutil

import (
	"sync"
	"time"

	"mintd/internal/issuer"
	"mintd/internal/journal"
	"mintd/internal/models"
	"mintd/internal/providers"
	"mintd/internal/services"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockMintService implements services.MintServiceInterface with
// injectable state and errors.
type MockMintService struct {
	mu sync.Mutex

	InitializeCalls []services.InitializeRequest
	InitializeErr   error

	PriorityAdds    [][]string
	PriorityRemoves [][]string
	PriorityErr     error

	GrantCalls  []string
	RevokeCalls []string
	AllowErr    error

	AdminErr error

	ClaimCalls   []services.ClaimRequest
	ClaimReceipt *services.ClaimReceipt
	ClaimErr     error

	Config       *models.SaleConfig
	PriorityList []string
	AllowEntries map[string]*models.AllowListEntry
	Counters     map[string]uint64
	Assets       []*models.Asset
}

func (m *MockMintService) Initialize(req services.InitializeRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InitializeCalls = append(m.InitializeCalls, req)
	return m.InitializeErr
}

func (m *MockMintService) AddPriorityList(_ string, wallets []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PriorityAdds = append(m.PriorityAdds, wallets)
	return m.PriorityErr
}

func (m *MockMintService) RemovePriorityList(_ string, wallets []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PriorityRemoves = append(m.PriorityRemoves, wallets)
	return m.PriorityErr
}

func (m *MockMintService) GrantAllowList(_, user string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GrantCalls = append(m.GrantCalls, user)
	return m.AllowErr
}

func (m *MockMintService) RevokeAllowList(_, user string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RevokeCalls = append(m.RevokeCalls, user)
	return m.AllowErr
}

func (m *MockMintService) UpdatePrice(_ string, _, _, _ uint64) error  { return m.AdminErr }
func (m *MockMintService) UpdateAmount(_ string, _, _, _ uint64) error { return m.AdminErr }
func (m *MockMintService) SetStage(_ string, _ int8) error             { return m.AdminErr }
func (m *MockMintService) SetURI(_, _ string) error                    { return m.AdminErr }
func (m *MockMintService) SetFreeze(_ string, _ bool) error            { return m.AdminErr }

func (m *MockMintService) Claim(req services.ClaimRequest) (*services.ClaimReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClaimCalls = append(m.ClaimCalls, req)
	if m.ClaimErr != nil {
		return nil, m.ClaimErr
	}
	return m.ClaimReceipt, nil
}

func (m *MockMintService) GetConfig() *models.SaleConfig {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Config
}

func (m *MockMintService) GetPriorityList() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PriorityList
}

func (m *MockMintService) GetAllowListEntry(user string) (*models.AllowListEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.AllowEntries[user]
	return entry, ok
}

func (m *MockMintService) GetCounter(wallet string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Counters[wallet]
}

func (m *MockMintService) GetAssets() []*models.Asset {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Assets
}

// MockLedgerService implements services.LedgerServiceInterface.
type MockLedgerService struct {
	mu         sync.Mutex
	Balances   map[string]uint64
	DepositErr error
}

func NewMockLedgerService() *MockLedgerService {
	return &MockLedgerService{Balances: make(map[string]uint64)}
}

func (m *MockLedgerService) Deposit(wallet string, amount uint64) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DepositErr != nil {
		return 0, m.DepositErr
	}
	m.Balances[wallet] += amount
	return m.Balances[wallet], nil
}

func (m *MockLedgerService) GetBalance(wallet string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Balances[wallet]
}

// MockJournal implements journal.JournalInterface and records claims
// in memory.
type MockJournal struct {
	mu        sync.Mutex
	Records   []*journal.ClaimRecord
	RecordErr error
	Closed    bool
}

func (m *MockJournal) RecordClaim(rec *journal.ClaimRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RecordErr != nil {
		return m.RecordErr
	}
	m.Records = append(m.Records, rec)
	return nil
}

func (m *MockJournal) ClaimsByWallet(wallet string) ([]*journal.ClaimRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*journal.ClaimRecord
	for _, rec := range m.Records {
		if rec.Wallet == wallet {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *MockJournal) Count() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.Records)), nil
}

func (m *MockJournal) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockIssuer implements issuer.IssuerInterface with injectable behavior.
// The default delegates to a real in-arena issuer.
type MockIssuer struct {
	IssueFn func(tx *models.Txn, req issuer.IssueRequest) (*models.Asset, error)
}

func (m *MockIssuer) Issue(tx *models.Txn, req issuer.IssueRequest) (*models.Asset, error) {
	if m.IssueFn != nil {
		return m.IssueFn(tx, req)
	}
	return issuer.NewLocalIssuer().Issue(tx, req)
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu            sync.Mutex
	Requests      int
	Durations     int
	CacheHits     int
	CacheMisses   int
	Persists      int
	Claims        map[string]int
	ClaimFailures map[string]int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Durations++
}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persists++
}

func (m *MockMetrics) IncClaimsTotal(tier string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Claims == nil {
		m.Claims = make(map[string]int)
	}
	m.Claims[tier]++
}

func (m *MockMetrics) IncClaimFailures(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClaimFailures == nil {
		m.ClaimFailures = make(map[string]int)
	}
	m.ClaimFailures[reason]++
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}
