package providers

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"mintd/internal/models"
	"mintd/internal/services"
	"mintd/internal/structures"
)

// --- minimal mock for MintServiceInterface ---

type metricsTestService struct{}

func (m *metricsTestService) Initialize(_ services.InitializeRequest) error       { return nil }
func (m *metricsTestService) AddPriorityList(_ string, _ []string) error          { return nil }
func (m *metricsTestService) RemovePriorityList(_ string, _ []string) error       { return nil }
func (m *metricsTestService) GrantAllowList(_, _ string) error                    { return nil }
func (m *metricsTestService) RevokeAllowList(_, _ string) error                   { return nil }
func (m *metricsTestService) UpdatePrice(_ string, _, _, _ uint64) error          { return nil }
func (m *metricsTestService) UpdateAmount(_ string, _, _, _ uint64) error         { return nil }
func (m *metricsTestService) SetStage(_ string, _ int8) error                     { return nil }
func (m *metricsTestService) SetURI(_, _ string) error                            { return nil }
func (m *metricsTestService) SetFreeze(_ string, _ bool) error                    { return nil }
func (m *metricsTestService) Claim(_ services.ClaimRequest) (*services.ClaimReceipt, error) {
	return nil, nil
}
func (m *metricsTestService) GetConfig() *models.SaleConfig { return nil }
func (m *metricsTestService) GetPriorityList() []string     { return nil }
func (m *metricsTestService) GetAllowListEntry(_ string) (*models.AllowListEntry, bool) {
	return nil, false
}
func (m *metricsTestService) GetCounter(_ string) uint64  { return 0 }
func (m *metricsTestService) GetAssets() []*models.Asset  { return nil }

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf, &metricsTestService{})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(time.Millisecond)
	m.IncClaimsTotal("og")
	m.IncClaimFailures("not_allowed")
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	defer func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestService{})
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	defer func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestService{})

	// These should not panic
	m.IncRequestsTotal("/claim", 201)
	m.IncRequestsTotal("/claim", 403)
	m.ObserveRequestDuration("/claim", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObservePersistenceDuration(100 * time.Millisecond)
	m.IncClaimsTotal("public")
	m.IncClaimFailures("insufficient_funds")
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
