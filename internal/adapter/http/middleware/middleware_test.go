package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"webhook-gateway/internal/core/domain"
	"webhook-gateway/internal/core/ports"
	"webhook-gateway/internal/core/ports/mocks"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// actorEcho reports the owner and audit actor the middleware attached.
func actorEcho(c *gin.Context) {
	actor, _ := ports.ActorFromContext(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"owner": c.GetString(CtxOwnerID),
		"actor": actor.ID,
		"admin": c.GetBool(CtxAdmin),
	})
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// --- RequestID ---

func TestRequestID_GeneratesAndEchoes(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRequestID)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(HeaderRequestID))
}

func TestRequestID_KeepsCallerID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/test", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRequestID)) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Body.String())
}

// --- JWTAuth ---

func TestJWTAuth_MissingHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokenSvc := mocks.NewMockTokenService(ctrl)

	r := gin.New()
	r.GET("/test", JWTAuth(tokenSvc, zerolog.Nop()), actorEcho)

	for _, header := range []string{"", "Basic abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Equal(t, "AUTH_001", decodeBody(t, w)["error_code"])
	}
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokenSvc := mocks.NewMockTokenService(ctrl)
	tokenSvc.EXPECT().Validate("bad").Return(nil, errors.New("signature is invalid"))

	r := gin.New()
	r.GET("/test", JWTAuth(tokenSvc, zerolog.Nop()), actorEcho)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer bad")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_EmptySubjectRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokenSvc := mocks.NewMockTokenService(ctrl)
	tokenSvc.EXPECT().Validate("tok").Return(&ports.TokenClaims{}, nil)

	r := gin.New()
	r.GET("/test", JWTAuth(tokenSvc, zerolog.Nop()), actorEcho)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_SetsOwnerAndActor(t *testing.T) {
	ctrl := gomock.NewController(t)
	tokenSvc := mocks.NewMockTokenService(ctrl)
	tokenSvc.EXPECT().Validate("good").Return(&ports.TokenClaims{OwnerID: "owner-1"}, nil)

	r := gin.New()
	r.GET("/test", JWTAuth(tokenSvc, zerolog.Nop()), actorEcho)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "owner-1", body["owner"])
	assert.Equal(t, "owner-1", body["actor"])
	assert.Equal(t, false, body["admin"])
}

// --- AdminAuth ---

func TestAdminAuth_MissingKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	hashSvc := mocks.NewMockHashService(ctrl)

	r := gin.New()
	r.GET("/test", AdminAuth(hashSvc, "$argon2id$hash", zerolog.Nop()), actorEcho)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_002", decodeBody(t, w)["error_code"])
}

func TestAdminAuth_NoHashConfigured(t *testing.T) {
	ctrl := gomock.NewController(t)
	hashSvc := mocks.NewMockHashService(ctrl)

	r := gin.New()
	r.GET("/test", AdminAuth(hashSvc, "", zerolog.Nop()), actorEcho)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderAdminKey, "anything")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_WrongKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	hashSvc := mocks.NewMockHashService(ctrl)
	hashSvc.EXPECT().Verify("wrong", "$argon2id$hash").Return(false, nil)

	r := gin.New()
	r.GET("/test", AdminAuth(hashSvc, "$argon2id$hash", zerolog.Nop()), actorEcho)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderAdminKey, "wrong")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_MalformedHash(t *testing.T) {
	ctrl := gomock.NewController(t)
	hashSvc := mocks.NewMockHashService(ctrl)
	hashSvc.EXPECT().Verify("key", "garbage").Return(false, errors.New("invalid hash format"))

	r := gin.New()
	r.GET("/test", AdminAuth(hashSvc, "garbage", zerolog.Nop()), actorEcho)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderAdminKey, "key")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminAuth_VerifiesOncePerKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	hashSvc := mocks.NewMockHashService(ctrl)
	hashSvc.EXPECT().Verify("secret-admin-key", "$argon2id$hash").Return(true, nil).Times(1)

	r := gin.New()
	r.GET("/test", AdminAuth(hashSvc, "$argon2id$hash", zerolog.Nop()), actorEcho)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(HeaderAdminKey, "secret-admin-key")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, domain.AdminActor, body["actor"])
		assert.Equal(t, true, body["admin"])
	}
}

// --- RequestLogger ---

func TestRequestLogger_LevelByStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "info"},
		{http.StatusNotFound, "warn"},
		{http.StatusBadGateway, "error"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		r := gin.New()
		r.Use(RequestID(), RequestLogger(zerolog.New(&buf)))
		r.GET("/test", func(c *gin.Context) { c.Status(tt.status) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, tt.level, entry["level"])
		assert.Equal(t, float64(tt.status), entry["status"])
		assert.Equal(t, "/test", entry["path"])
		assert.NotEmpty(t, entry["request_id"])
	}
}

// --- Recovery ---

func TestRecovery_ReturnsEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zerolog.Nop()))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "SYS_001", decodeBody(t, w)["error_code"])
}
