package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"webhook-gateway/internal/core/domain"
	"webhook-gateway/internal/core/ports"
	"webhook-gateway/internal/core/ports/mocks"
	"webhook-gateway/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	testAdminKey  = "admin-key-0123456789"
	testAdminHash = "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"
	testToken     = "owner-token"
)

type routerFixture struct {
	router    *gin.Engine
	endpoints *mocks.MockEndpointService
	admin     *mocks.MockAdminService
	scheduler *mocks.MockScheduler
	limits    *mocks.MockRateLimitStore
}

func newRouterFixture(t *testing.T, metricsEnabled bool) *routerFixture {
	ctrl := gomock.NewController(t)
	f := &routerFixture{
		endpoints: mocks.NewMockEndpointService(ctrl),
		admin:     mocks.NewMockAdminService(ctrl),
		scheduler: mocks.NewMockScheduler(ctrl),
		limits:    mocks.NewMockRateLimitStore(ctrl),
	}

	tokens := mocks.NewMockTokenService(ctrl)
	tokens.EXPECT().Validate(testToken).Return(&ports.TokenClaims{OwnerID: "owner-1"}, nil).AnyTimes()
	tokens.EXPECT().Validate(gomock.Not(testToken)).Return(nil, errors.New("bad token")).AnyTimes()

	hashes := mocks.NewMockHashService(ctrl)
	hashes.EXPECT().Verify(testAdminKey, testAdminHash).Return(true, nil).AnyTimes()
	hashes.EXPECT().Verify(gomock.Not(testAdminKey), testAdminHash).Return(false, nil).AnyTimes()

	f.limits.EXPECT().Allow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&ports.RateLimitResult{Allowed: true, Limit: 100, Remaining: 99, ResetAt: 1}, nil).AnyTimes()

	f.router = SetupRouter(RouterDeps{
		EndpointSvc:    f.endpoints,
		Dispatcher:     mocks.NewMockDispatcherService(ctrl),
		Worker:         mocks.NewMockDeliveryWorker(ctrl),
		AdminSvc:       f.admin,
		Scheduler:      f.scheduler,
		TokenSvc:       tokens,
		HashSvc:        hashes,
		AdminKeyHash:   testAdminHash,
		RateLimitStore: f.limits,
		MetricsEnabled: metricsEnabled,
		BaseContext:    context.Background(),
		Logger:         zerolog.New(io.Discard),
	})
	return f
}

func (f *routerFixture) do(method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRouter_OwnerRoutesRequireToken(t *testing.T) {
	f := newRouterFixture(t, false)

	w := f.do(http.MethodGet, "/api/v1/webhooks", nil)
	assertError(t, w, http.StatusUnauthorized, "AUTH_001")

	w = f.do(http.MethodGet, "/api/v1/webhooks", map[string]string{"Authorization": "Bearer nope"})
	assertError(t, w, http.StatusUnauthorized, "AUTH_001")

	f.endpoints.EXPECT().List(gomock.Any(), "owner-1").Return([]domain.Endpoint{}, nil)
	w = f.do(http.MethodGet, "/api/v1/webhooks", map[string]string{"Authorization": "Bearer " + testToken})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "99", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestRouter_AdminRoutesRequireKey(t *testing.T) {
	f := newRouterFixture(t, false)

	w := f.do(http.MethodGet, "/api/v1/admin/stats", nil)
	assertError(t, w, http.StatusUnauthorized, "AUTH_002")

	w = f.do(http.MethodGet, "/api/v1/admin/stats", map[string]string{"X-Admin-Key": "wrong"})
	assertError(t, w, http.StatusUnauthorized, "AUTH_002")

	// An owner token is not an admin credential.
	w = f.do(http.MethodPost, "/api/v1/events", map[string]string{"Authorization": "Bearer " + testToken})
	assertError(t, w, http.StatusUnauthorized, "AUTH_002")

	f.admin.EXPECT().Stats(gomock.Any()).Return(&ports.WebhookStats{}, nil)
	w = f.do(http.MethodGet, "/api/v1/admin/stats", map[string]string{"X-Admin-Key": testAdminKey})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRouter_PurgeDoesNotMatchDeliveryID(t *testing.T) {
	f := newRouterFixture(t, false)

	f.admin.EXPECT().Purge(gomock.Any(), 7).Return(int64(0), nil)
	w := f.do(http.MethodPost, "/api/v1/admin/deliveries/purge?days=7", map[string]string{"X-Admin-Key": testAdminKey})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = f.do(http.MethodGet, "/api/v1/admin/deliveries/not-a-uuid", map[string]string{"X-Admin-Key": testAdminKey})
	assertError(t, w, http.StatusBadRequest, "WHK_002")
}

func TestRouter_SchedulerTrigger(t *testing.T) {
	f := newRouterFixture(t, false)

	f.scheduler.EXPECT().Trigger(gomock.Any(), "retry").Return(nil)
	f.scheduler.EXPECT().Status().Return(ports.SchedulerStatus{Running: true})
	w := f.do(http.MethodPost, "/api/v1/admin/scheduler/trigger/retry", map[string]string{"X-Admin-Key": testAdminKey})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRouter_Infra(t *testing.T) {
	metrics.RegisterDefault()
	f := newRouterFixture(t, true)

	w := f.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// One request so the HTTP counters have a sample.
	f.do(http.MethodGet, "/swagger/spec", nil)

	w = f.do(http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "http_requests_total"), "missing http counters")
}

func TestRouter_MetricsDisabled(t *testing.T) {
	f := newRouterFixture(t, false)
	w := f.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
