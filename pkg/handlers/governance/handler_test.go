package governance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/cost-atlas/pkg/models/api"
	"github.com/de-tools/cost-atlas/pkg/models/domain"
	"github.com/de-tools/cost-atlas/pkg/monitoring"
	"github.com/de-tools/cost-atlas/pkg/services/anomaly"
	"github.com/de-tools/cost-atlas/pkg/services/forecast"
	"github.com/de-tools/cost-atlas/pkg/services/inventory"
	"github.com/de-tools/cost-atlas/pkg/services/optimization"
	"github.com/de-tools/cost-atlas/pkg/store"
)

type mockInventoryService struct {
	mock.Mock
}

func (m *mockInventoryService) Report(ctx context.Context, input domain.ResourceInventoryInput) (*domain.ResourceInventory, domain.ValidationResult, error) {
	args := m.Called(ctx, input)
	var rec *domain.ResourceInventory
	if args.Get(0) != nil {
		rec = args.Get(0).(*domain.ResourceInventory)
	}
	return rec, args.Get(1).(domain.ValidationResult), args.Error(2)
}

func (m *mockInventoryService) Get(ctx context.Context, key domain.ResourceKey) (*domain.ResourceInventory, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResourceInventory), args.Error(1)
}

func (m *mockInventoryService) Remove(ctx context.Context, key domain.ResourceKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockInventoryService) List(ctx context.Context, filter inventory.Filter) ([]*domain.ResourceInventory, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ResourceInventory), args.Error(1)
}

type mockOptimizationService struct {
	mock.Mock
}

func (m *mockOptimizationService) Create(ctx context.Context, input domain.CostOptimizationInput) (*domain.CostOptimization, domain.ValidationResult, error) {
	args := m.Called(ctx, input)
	var rec *domain.CostOptimization
	if args.Get(0) != nil {
		rec = args.Get(0).(*domain.CostOptimization)
	}
	return rec, args.Get(1).(domain.ValidationResult), args.Error(2)
}

func (m *mockOptimizationService) Get(ctx context.Context, id string) (*domain.CostOptimization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostOptimization), args.Error(1)
}

func (m *mockOptimizationService) List(ctx context.Context, filter optimization.Filter) ([]*domain.CostOptimization, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CostOptimization), args.Error(1)
}

func (m *mockOptimizationService) Approve(ctx context.Context, id, approvedBy string) (*domain.CostOptimization, error) {
	args := m.Called(ctx, id, approvedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostOptimization), args.Error(1)
}

func (m *mockOptimizationService) Execute(ctx context.Context, id, result string) (*domain.CostOptimization, error) {
	args := m.Called(ctx, id, result)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostOptimization), args.Error(1)
}

func (m *mockOptimizationService) Rollback(ctx context.Context, id, reason string) (*domain.CostOptimization, error) {
	args := m.Called(ctx, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostOptimization), args.Error(1)
}

func (m *mockOptimizationService) OverrideStatus(ctx context.Context, id, status string) (*domain.CostOptimization, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostOptimization), args.Error(1)
}

type mockAnomalyService struct {
	mock.Mock
}

func (m *mockAnomalyService) Record(ctx context.Context, input domain.CostAnomalyInput) (*domain.CostAnomaly, domain.ValidationResult, error) {
	args := m.Called(ctx, input)
	var rec *domain.CostAnomaly
	if args.Get(0) != nil {
		rec = args.Get(0).(*domain.CostAnomaly)
	}
	return rec, args.Get(1).(domain.ValidationResult), args.Error(2)
}

func (m *mockAnomalyService) Get(ctx context.Context, id string) (*domain.CostAnomaly, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostAnomaly), args.Error(1)
}

func (m *mockAnomalyService) List(ctx context.Context, filter anomaly.Filter) ([]*domain.CostAnomaly, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CostAnomaly), args.Error(1)
}

func (m *mockAnomalyService) Resolve(ctx context.Context, id, resolvedBy, notes string) (*domain.CostAnomaly, error) {
	args := m.Called(ctx, id, resolvedBy, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostAnomaly), args.Error(1)
}

func (m *mockAnomalyService) MarkAlertSent(ctx context.Context, id string, channels []string) (*domain.CostAnomaly, error) {
	args := m.Called(ctx, id, channels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostAnomaly), args.Error(1)
}

func (m *mockAnomalyService) AddContributingFactor(ctx context.Context, id, factor string) (*domain.CostAnomaly, error) {
	args := m.Called(ctx, id, factor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostAnomaly), args.Error(1)
}

func (m *mockAnomalyService) AddAffectedResource(ctx context.Context, id, resourceID string) (*domain.CostAnomaly, error) {
	args := m.Called(ctx, id, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostAnomaly), args.Error(1)
}

type mockForecastService struct {
	mock.Mock
}

func (m *mockForecastService) Create(ctx context.Context, input domain.BudgetForecastInput) (*domain.BudgetForecast, domain.ValidationResult, error) {
	args := m.Called(ctx, input)
	var rec *domain.BudgetForecast
	if args.Get(0) != nil {
		rec = args.Get(0).(*domain.BudgetForecast)
	}
	return rec, args.Get(1).(domain.ValidationResult), args.Error(2)
}

func (m *mockForecastService) Get(ctx context.Context, id string) (*domain.BudgetForecast, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetForecast), args.Error(1)
}

func (m *mockForecastService) List(ctx context.Context, filter forecast.Filter) ([]*domain.BudgetForecast, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BudgetForecast), args.Error(1)
}

func (m *mockForecastService) Update(ctx context.Context, id string, patch domain.ForecastPatch) (*domain.BudgetForecast, domain.ValidationResult, error) {
	args := m.Called(ctx, id, patch)
	var rec *domain.BudgetForecast
	if args.Get(0) != nil {
		rec = args.Get(0).(*domain.BudgetForecast)
	}
	return rec, args.Get(1).(domain.ValidationResult), args.Error(2)
}

func (m *mockForecastService) AssessRisk(ctx context.Context, id string) (domain.BudgetRiskAssessment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.BudgetRiskAssessment), args.Error(1)
}

func (m *mockForecastService) AddAssumption(ctx context.Context, id, assumption string) (*domain.BudgetForecast, error) {
	args := m.Called(ctx, id, assumption)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetForecast), args.Error(1)
}

func (m *mockForecastService) AddRiskFactor(ctx context.Context, id, factor string) (*domain.BudgetForecast, error) {
	args := m.Called(ctx, id, factor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetForecast), args.Error(1)
}

type handlerMocks struct {
	inventory    *mockInventoryService
	optimization *mockOptimizationService
	anomaly      *mockAnomalyService
	forecast     *mockForecastService
}

func setupHandler() (*Handler, *handlerMocks) {
	mocks := &handlerMocks{
		inventory:    new(mockInventoryService),
		optimization: new(mockOptimizationService),
		anomaly:      new(mockAnomalyService),
		forecast:     new(mockForecastService),
	}
	h := NewHandler(mocks.inventory, mocks.optimization, mocks.anomaly, mocks.forecast, monitoring.NewMetrics())
	return h, mocks
}

func withURLParams(req *http.Request, params map[string]string) *http.Request {
	ctx := chi.NewRouteContext()
	for k, v := range params {
		ctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))
}

func TestReportResource(t *testing.T) {
	t.Run("valid report", func(t *testing.T) {
		h, mocks := setupHandler()
		rec := domain.NewResourceInventory(domain.ResourceInventoryInput{
			ResourceID:   "i-0abc123",
			Region:       "us-east-1",
			ResourceType: "ec2",
		})
		mocks.inventory.On("Report", mock.Anything, mock.Anything).
			Return(rec, domain.ValidationResult{Valid: true}, nil)

		req := httptest.NewRequest("POST", "/api/v1/resources", strings.NewReader(
			`{"resourceId":"i-0abc123","region":"us-east-1","resourceType":"ec2"}`,
		))
		w := httptest.NewRecorder()
		h.ReportResource(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response api.ResourceInventory
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "i-0abc123", response.ResourceID)
		assert.Equal(t, "unknown", response.State)
		mocks.inventory.AssertExpectations(t)
	})

	t.Run("invalid report returns the validation outcome", func(t *testing.T) {
		h, mocks := setupHandler()
		mocks.inventory.On("Report", mock.Anything, mock.Anything).
			Return(nil, domain.ValidationResult{Valid: false, Errors: []string{"resourceId is required"}}, nil)

		req := httptest.NewRequest("POST", "/api/v1/resources", strings.NewReader(`{"region":"us-east-1"}`))
		w := httptest.NewRecorder()
		h.ReportResource(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response api.ValidationResult
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.False(t, response.IsValid)
		assert.Equal(t, []string{"resourceId is required"}, response.Errors)
	})

	t.Run("malformed body never reaches the service", func(t *testing.T) {
		h, mocks := setupHandler()

		req := httptest.NewRequest("POST", "/api/v1/resources", strings.NewReader(
			`{"resourceId":"i-0abc123","currentCost":"lots"}`,
		))
		w := httptest.NewRecorder()
		h.ReportResource(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "decode request body")
		mocks.inventory.AssertNotCalled(t, "Report", mock.Anything, mock.Anything)
	})
}

func TestGetResource_NotFound(t *testing.T) {
	h, mocks := setupHandler()
	key := domain.ResourceKey{ResourceID: "i-0abc123", Region: "us-east-1"}
	mocks.inventory.On("Get", mock.Anything, key).
		Return(nil, fmt.Errorf("get resource us-east-1/i-0abc123: %w", store.ErrNotFound))

	req := httptest.NewRequest("GET", "/api/v1/resources/us-east-1/i-0abc123", nil)
	req = withURLParams(req, map[string]string{"region": "us-east-1", "resourceID": "i-0abc123"})
	w := httptest.NewRecorder()
	h.GetResource(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response api.Error
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Contains(t, response.Error, "record not found")
}

func TestRemoveResource(t *testing.T) {
	h, mocks := setupHandler()
	key := domain.ResourceKey{ResourceID: "i-0abc123", Region: "us-east-1"}
	mocks.inventory.On("Remove", mock.Anything, key).Return(nil)

	req := httptest.NewRequest("DELETE", "/api/v1/resources/us-east-1/i-0abc123", nil)
	req = withURLParams(req, map[string]string{"region": "us-east-1", "resourceID": "i-0abc123"})
	w := httptest.NewRecorder()
	h.RemoveResource(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	mocks.inventory.AssertExpectations(t)
}

func TestApproveOptimization(t *testing.T) {
	t.Run("approved", func(t *testing.T) {
		h, mocks := setupHandler()
		rec := &domain.CostOptimization{
			OptimizationID: "opt-1",
			Status:         domain.OptimizationStatusApproved,
			ApprovedBy:     "alice",
			CurrentCost:    200,
			ProjectedCost:  150,
		}
		mocks.optimization.On("Approve", mock.Anything, "opt-1", "alice").Return(rec, nil)

		req := httptest.NewRequest("POST", "/api/v1/optimizations/opt-1/approve", strings.NewReader(`{"approvedBy":"alice"}`))
		req = withURLParams(req, map[string]string{"id": "opt-1"})
		w := httptest.NewRecorder()
		h.ApproveOptimization(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response api.CostOptimization
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "approved", response.Status)
		assert.Equal(t, 25.0, response.SavingsPercentage, "serialized record carries the computed percentage")
	})

	t.Run("illegal transition is a conflict", func(t *testing.T) {
		h, mocks := setupHandler()
		mocks.optimization.On("Approve", mock.Anything, "opt-1", "alice").
			Return(nil, fmt.Errorf("approve optimization opt-1: %w", optimization.ErrIllegalTransition))

		req := httptest.NewRequest("POST", "/api/v1/optimizations/opt-1/approve", strings.NewReader(`{"approvedBy":"alice"}`))
		req = withURLParams(req, map[string]string{"id": "opt-1"})
		w := httptest.NewRecorder()
		h.ApproveOptimization(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var response api.Error
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Contains(t, response.Error, "illegal status transition")
	})
}

func TestOverrideOptimizationStatus_UnknownStatus(t *testing.T) {
	h, mocks := setupHandler()
	mocks.optimization.On("OverrideStatus", mock.Anything, "opt-1", "archived").
		Return(nil, fmt.Errorf("%w: %q", optimization.ErrUnknownStatus, "archived"))

	req := httptest.NewRequest("PUT", "/api/v1/optimizations/opt-1/status", strings.NewReader(`{"status":"archived"}`))
	req = withURLParams(req, map[string]string{"id": "opt-1"})
	w := httptest.NewRecorder()
	h.OverrideOptimizationStatus(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response api.Error
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Contains(t, response.Error, "unknown optimization status")
}

func TestResolveAnomaly_AlreadyResolved(t *testing.T) {
	h, mocks := setupHandler()
	mocks.anomaly.On("Resolve", mock.Anything, "an-1", "bob", "duplicate").
		Return(nil, fmt.Errorf("resolve anomaly an-1: %w", anomaly.ErrAlreadyResolved))

	req := httptest.NewRequest("POST", "/api/v1/anomalies/an-1/resolve", strings.NewReader(
		`{"resolvedBy":"bob","notes":"duplicate"}`,
	))
	req = withURLParams(req, map[string]string{"id": "an-1"})
	w := httptest.NewRecorder()
	h.ResolveAnomaly(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListAnomalies_ResolvedFilter(t *testing.T) {
	t.Run("boolean filter is forwarded", func(t *testing.T) {
		h, mocks := setupHandler()
		resolved := true
		mocks.anomaly.On("List", mock.Anything, anomaly.Filter{Resolved: &resolved}).
			Return([]*domain.CostAnomaly{}, nil)

		req := httptest.NewRequest("GET", "/api/v1/anomalies?resolved=true", nil)
		w := httptest.NewRecorder()
		h.ListAnomalies(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]\n", w.Body.String(), "an empty listing is a JSON list, not null")
		mocks.anomaly.AssertExpectations(t)
	})

	t.Run("malformed boolean", func(t *testing.T) {
		h, mocks := setupHandler()

		req := httptest.NewRequest("GET", "/api/v1/anomalies?resolved=maybe", nil)
		w := httptest.NewRecorder()
		h.ListAnomalies(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "resolved must be a boolean\n", w.Body.String())
		mocks.anomaly.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}

func TestPatchForecast_InvalidPatch(t *testing.T) {
	h, mocks := setupHandler()
	mocks.forecast.On("Update", mock.Anything, "fc-1", mock.Anything).
		Return(nil, domain.ValidationResult{Valid: false, Errors: []string{"currentSpend must be a non-negative number"}}, nil)

	req := httptest.NewRequest("PATCH", "/api/v1/forecasts/fc-1", strings.NewReader(`{"currentSpend":-5}`))
	req = withURLParams(req, map[string]string{"id": "fc-1"})
	w := httptest.NewRecorder()
	h.PatchForecast(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response api.ValidationResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.False(t, response.IsValid)
	assert.Equal(t, []string{"currentSpend must be a non-negative number"}, response.Errors)
}

func TestGetForecastRisk(t *testing.T) {
	h, mocks := setupHandler()
	mocks.forecast.On("AssessRisk", mock.Anything, "fc-1").
		Return(domain.BudgetRiskAssessment{
			RiskLevel:             domain.RiskLevelMedium,
			CurrentUtilization:    85,
			ForecastedUtilization: 92,
		}, nil)

	req := httptest.NewRequest("GET", "/api/v1/forecasts/fc-1/risk", nil)
	req = withURLParams(req, map[string]string{"id": "fc-1"})
	w := httptest.NewRecorder()
	h.GetForecastRisk(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response api.BudgetRiskAssessment
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "MEDIUM", response.RiskLevel)
	assert.Equal(t, 85.0, response.CurrentUtilization)
	assert.Equal(t, 92.0, response.ForecastedUtilization)
}

func TestHealthz(t *testing.T) {
	h, _ := setupHandler()

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	h.Healthz(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
