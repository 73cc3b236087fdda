package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cloudops-tools/cloudops/pkg/models/api"
	"github.com/cloudops-tools/cloudops/pkg/models/domain"
	"github.com/cloudops-tools/cloudops/pkg/services/auth"
	"github.com/cloudops-tools/cloudops/pkg/services/compute"
	"github.com/cloudops-tools/cloudops/pkg/services/cost"
	"github.com/cloudops-tools/cloudops/pkg/services/credentials"
	"github.com/cloudops-tools/cloudops/pkg/services/metrics"
	"github.com/cloudops-tools/cloudops/pkg/services/security"
	"github.com/cloudops-tools/cloudops/pkg/services/storage"
)

type mockAccountExplorer struct {
	mock.Mock
}

func (m *mockAccountExplorer) Connect(ctx context.Context, principalID, accessKeyID, secretAccessKey, region string) (domain.AccountBinding, error) {
	args := m.Called(ctx, principalID, accessKeyID, secretAccessKey, region)
	return args.Get(0).(domain.AccountBinding), args.Error(1)
}

func (m *mockAccountExplorer) Status(principalID string) (domain.AccountBinding, bool) {
	args := m.Called(principalID)
	return args.Get(0).(domain.AccountBinding), args.Bool(1)
}

func (m *mockAccountExplorer) Disconnect(principalID string) {
	m.Called(principalID)
}

func (m *mockAccountExplorer) Compute(principalID string) (compute.Explorer, error) {
	args := m.Called(principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(compute.Explorer), args.Error(1)
}

func (m *mockAccountExplorer) Storage(principalID string) (storage.Explorer, error) {
	args := m.Called(principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(storage.Explorer), args.Error(1)
}

func (m *mockAccountExplorer) Metrics(principalID string) (metrics.Explorer, error) {
	args := m.Called(principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(metrics.Explorer), args.Error(1)
}

func (m *mockAccountExplorer) Cost(principalID string) (cost.Explorer, string, error) {
	args := m.Called(principalID)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(cost.Explorer), args.String(1), args.Error(2)
}

func (m *mockAccountExplorer) Security(principalID string) (security.Engine, error) {
	args := m.Called(principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(security.Engine), args.Error(1)
}

type mockComputeExplorer struct {
	mock.Mock
}

func (m *mockComputeExplorer) ListInstances(ctx context.Context) ([]domain.Instance, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Instance), args.Error(1)
}

func (m *mockComputeExplorer) Summarize(ctx context.Context) (domain.InstanceSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.InstanceSummary), args.Error(1)
}

type mockSecurityEngine struct {
	mock.Mock
}

func (m *mockSecurityEngine) Evaluate(ctx context.Context) (domain.PostureResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.PostureResult), args.Error(1)
}

type mockCostExplorer struct {
	mock.Mock
}

func (m *mockCostExplorer) CurrentMonth(ctx context.Context) (domain.CostSnapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.CostSnapshot), args.Error(1)
}

func (m *mockCostExplorer) TrailingTrend(ctx context.Context) ([]domain.MonthCost, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.MonthCost), args.Error(1)
}

func (m *mockCostExplorer) Budgets(ctx context.Context, accountID string) ([]domain.Budget, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).([]domain.Budget), args.Error(1)
}

type testEnv struct {
	server  *httptest.Server
	auth    *auth.Service
	account *mockAccountExplorer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zerolog.New(zerolog.NewTestWriter(t))
	authService := auth.NewService(auth.Config{Secret: "test-secret"})
	accountExplorer := new(mockAccountExplorer)

	router := ConfigureRouter(logger, Dependencies{
		Auth:    authService,
		Account: accountExplorer,
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{server: server, auth: authService, account: accountExplorer}
}

func (e *testEnv) token(t *testing.T) string {
	t.Helper()
	_, token, err := e.auth.Register(context.Background(), "jo@example.com", "hunter22", "Jo")
	require.NoError(t, err)
	return token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var payload *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewBuffer(encoded)
	} else {
		payload = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, e.server.URL+path, payload)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decode[api.Error](t, resp)
	assert.Equal(t, "Route not found", body.Error)
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/auth/register", "", api.RegisterRequest{
		Email:    "jo@example.com",
		Password: "hunter22",
		Name:     "Jo",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	registered := decode[api.AuthResponse](t, resp)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "jo@example.com", registered.User.Email)

	resp = env.request(t, http.MethodPost, "/api/auth/login", "", api.LoginRequest{
		Email:    "jo@example.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	loggedIn := decode[api.AuthResponse](t, resp)

	resp = env.request(t, http.MethodGet, "/api/auth/profile", loggedIn.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	profile := decode[api.Profile](t, resp)
	assert.Equal(t, registered.User.ID, profile.ID)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	paths := []string{
		"/api/aws/status",
		"/api/ec2/instances",
		"/api/s3/buckets",
		"/api/cost/current",
		"/api/security/posture",
	}
	for _, path := range paths {
		resp := env.request(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "path %s", path)
	}
}

func TestProtectedRoutesRejectGarbageToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/aws/status", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decode[api.Error](t, resp)
	assert.Equal(t, "Invalid or expired token", body.Error)
}

func TestStatus_NotConnected(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	env.account.On("Status", mock.Anything).Return(domain.AccountBinding{}, false)

	resp := env.request(t, http.MethodGet, "/api/aws/status", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	status := decode[api.ConnectionStatus](t, resp)
	assert.False(t, status.Connected)
	assert.Empty(t, status.AccountID)
}

func TestConnect(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	binding := domain.AccountBinding{
		AccountID: "123456789012",
		ARN:       "arn:aws:iam::123456789012:user/jo",
		Region:    "eu-west-1",
	}
	env.account.On("Connect", mock.Anything, mock.Anything, "AKIAEXAMPLE", "secret", "eu-west-1").
		Return(binding, nil)

	resp := env.request(t, http.MethodPost, "/api/aws/connect", token, api.ConnectRequest{
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
		Region:          "eu-west-1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	connected := decode[api.ConnectResponse](t, resp)
	assert.Equal(t, "123456789012", connected.Account.AccountID)
	assert.Equal(t, "eu-west-1", connected.Account.Region)
}

func TestConnect_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	resp := env.request(t, http.MethodPost, "/api/aws/connect", token, api.ConnectRequest{
		AccessKeyID: "AKIAEXAMPLE",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConnect_InvalidCredentials(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	env.account.On("Connect", mock.Anything, mock.Anything, "AKIABAD", "wrong", "us-east-1").
		Return(domain.AccountBinding{}, credentials.ErrInvalidCredentials)

	resp := env.request(t, http.MethodPost, "/api/aws/connect", token, api.ConnectRequest{
		AccessKeyID:     "AKIABAD",
		SecretAccessKey: "wrong",
		Region:          "us-east-1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAggregation_NotConnectedIsPreconditionFailure(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	env.account.On("Compute", mock.Anything).Return(nil, credentials.ErrNotConnected)

	resp := env.request(t, http.MethodGet, "/api/ec2/summary", token, nil)
	require.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)

	body := decode[api.Error](t, resp)
	assert.Equal(t, credentials.ErrNotConnected.Error(), body.Error)
}

func TestInstanceSummary(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	computeExplorer := new(mockComputeExplorer)
	computeExplorer.On("Summarize", mock.Anything).
		Return(domain.InstanceSummary{Total: 5, Running: 2, Stopped: 1, Other: 2}, nil)
	env.account.On("Compute", mock.Anything).Return(computeExplorer, nil)

	resp := env.request(t, http.MethodGet, "/api/ec2/summary", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	summary := decode[api.InstanceSummary](t, resp)
	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 2, summary.Running)
	assert.Equal(t, 1, summary.Stopped)
	assert.Equal(t, 2, summary.Other)
}

func TestCurrentCost(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	costExplorer := new(mockCostExplorer)
	costExplorer.On("CurrentMonth", mock.Anything).Return(domain.CostSnapshot{
		PeriodStart: "2026-08-01",
		PeriodEnd:   "2026-08-18",
		TotalCost:   "123.4568",
		Currency:    "USD",
		ByService: []domain.ServiceCost{
			{Service: "Amazon EC2", Cost: "100.5000", Unit: "USD"},
		},
	}, nil)
	env.account.On("Cost", mock.Anything).Return(costExplorer, "123456789012", nil)

	resp := env.request(t, http.MethodGet, "/api/cost/current", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	current := decode[api.CurrentCost](t, resp)
	assert.Equal(t, "123.4568", current.TotalCost)
	assert.Equal(t, "2026-08-01", current.Period.Start)
	require.Len(t, current.ByService, 1)
	assert.Equal(t, "Amazon EC2", current.ByService[0].Service)
}

func TestSecurityPosture(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	engine := new(mockSecurityEngine)
	engine.On("Evaluate", mock.Anything).Return(domain.PostureResult{
		Score:   75,
		Posture: "Fair",
		Findings: []domain.Finding{{
			Kind:     "SG_OPEN_TO_WORLD",
			Severity: domain.SeverityCritical,
			Resource: "web (sg-123)",
			Message:  "Port 22 open to the world",
		}},
		Critical: 1,
	}, nil)
	env.account.On("Security", mock.Anything).Return(engine, nil)

	resp := env.request(t, http.MethodGet, "/api/security/posture", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	posture := decode[api.Posture](t, resp)
	assert.Equal(t, 75, posture.Score)
	assert.Equal(t, "Fair", posture.Posture)
	require.Len(t, posture.Findings, 1)
	assert.Equal(t, "SG_OPEN_TO_WORLD", posture.Findings[0].Type)
	assert.Equal(t, "CRITICAL", posture.Findings[0].Severity)
	assert.Equal(t, 1, posture.Critical)
}

func TestUpstreamFailureIsOpaque(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t)

	storageExplorer := new(mockStorageExplorer)
	storageExplorer.On("ListBuckets", mock.Anything).
		Return([]domain.Bucket(nil), assert.AnError)
	env.account.On("Storage", mock.Anything).Return(storageExplorer, nil)

	resp := env.request(t, http.MethodGet, "/api/s3/buckets", token, nil)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decode[api.Error](t, resp)
	assert.NotContains(t, body.Error, assert.AnError.Error())
}

type mockStorageExplorer struct {
	mock.Mock
}

func (m *mockStorageExplorer) ListBuckets(ctx context.Context) ([]domain.Bucket, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Bucket), args.Error(1)
}
