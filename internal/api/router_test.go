package api

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"customer-service/internal/config"
	"customer-service/internal/domain/customer"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubCustomerService struct {
	mock.Mock
}

func (s *stubCustomerService) List(ctx context.Context) ([]customer.CustomerDTO, error) {
	ret := s.Called(ctx)
	return ret.Get(0).([]customer.CustomerDTO), ret.Error(1)
}

func (s *stubCustomerService) GetByID(ctx context.Context, id int64) (*customer.CustomerDTO, error) {
	ret := s.Called(ctx, id)
	dto, _ := ret.Get(0).(*customer.CustomerDTO)
	return dto, ret.Error(1)
}

func (s *stubCustomerService) Create(ctx context.Context, in *customer.CustomerCreateDTO) (*int64, error) {
	ret := s.Called(ctx, in)
	id, _ := ret.Get(0).(*int64)
	return id, ret.Error(1)
}

func (s *stubCustomerService) Update(ctx context.Context, id int64, in customer.CustomerUpdateDTO) (customer.OperationResult, error) {
	ret := s.Called(ctx, id, in)
	return ret.Get(0).(customer.OperationResult), ret.Error(1)
}

func (s *stubCustomerService) Delete(ctx context.Context, id int64) (customer.OperationResult, error) {
	ret := s.Called(ctx, id)
	return ret.Get(0).(customer.OperationResult), ret.Error(1)
}

func (s *stubCustomerService) Search(ctx context.Context, term string) ([]customer.CustomerDTO, error) {
	ret := s.Called(ctx, term)
	return ret.Get(0).([]customer.CustomerDTO), ret.Error(1)
}

func testConfig(authEnabled bool) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			RequestTimeout: 5 * time.Second,
			Auth: config.AuthConfig{
				Enabled:   authEnabled,
				JWTSecret: "router-test-secret",
				TokenTTL:  time.Hour,
			},
		},
		Metrics: config.MetricsConfig{Path: "/metrics"},
	}
}

func TestSetupRouter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("health endpoint", func(t *testing.T) {
		router := SetupRouter(new(stubCustomerService), nil, testConfig(false), logger)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("metrics endpoint", func(t *testing.T) {
		router := SetupRouter(new(stubCustomerService), nil, testConfig(false), logger)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "go_goroutines")
	})

	t.Run("swagger redirect", func(t *testing.T) {
		router := SetupRouter(new(stubCustomerService), nil, testConfig(false), logger)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger", nil))

		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/swagger/index.html", rec.Header().Get("Location"))
	})

	t.Run("customers open when auth disabled", func(t *testing.T) {
		svc := new(stubCustomerService)
		svc.On("List", mock.Anything).Return([]customer.CustomerDTO{}, nil).Once()
		router := SetupRouter(svc, nil, testConfig(false), logger)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(`{"username":"ana"}`)))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("customers require a token when auth enabled", func(t *testing.T) {
		svc := new(stubCustomerService)
		svc.On("List", mock.Anything).Return([]customer.CustomerDTO{}, nil).Once()
		router := SetupRouter(svc, nil, testConfig(true), logger)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/customers", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader([]byte(`{"username":"ana"}`))))
		require.Equal(t, http.StatusOK, rec.Code)

		var tokenResp struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokenResp))

		req := httptest.NewRequest(http.MethodGet, "/customers", nil)
		req.Header.Set("Authorization", tokenResp.Token)
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})
}
