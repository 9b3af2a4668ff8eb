package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okValidator(claims *Claims) TokenValidator {
	return func(token string) (*Claims, error) {
		if token == "good-token" {
			return claims, nil
		}
		return nil, fmt.Errorf("invalid token")
	}
}

func captureHandler(gotCtx *map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*gotCtx = map[string]string{
			"user_id":    UserIDFromContext(r.Context()),
			"email":      UserEmailFromContext(r.Context()),
			"role":       RoleFromContext(r.Context()),
			"session_id": SessionIDFromContext(r.Context()),
		}
		w.WriteHeader(http.StatusOK)
	}
}

func TestAuth_ValidToken(t *testing.T) {
	var got map[string]string
	h := Auth(okValidator(&Claims{UserID: "u-1", Email: "a@b.com", Role: "customer"}))(captureHandler(&got))

	req := httptest.NewRequest("POST", "/orders/checkout", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", got["user_id"])
	assert.Equal(t, "a@b.com", got["email"])
	assert.Equal(t, "customer", got["role"])
}

func TestAuth_MissingHeaderFailsClosed(t *testing.T) {
	h := Auth(okValidator(&Claims{}))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/orders/checkout", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	h := Auth(okValidator(&Claims{}))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest("POST", "/orders/checkout", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	h := Auth(okValidator(&Claims{}))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	req := httptest.NewRequest("POST", "/orders/checkout", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuth_AnonymousSession(t *testing.T) {
	var got map[string]string
	h := OptionalAuth(okValidator(&Claims{}))(captureHandler(&got))

	req := httptest.NewRequest("GET", "/cart", nil)
	req.Header.Set(SessionIDHeader, "sess-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", got["user_id"])
	assert.Equal(t, "sess-42", got["session_id"])
}

func TestOptionalAuth_AuthenticatedWithSession(t *testing.T) {
	var got map[string]string
	h := OptionalAuth(okValidator(&Claims{UserID: "u-2", Email: "c@d.com", Role: "customer"}))(captureHandler(&got))

	req := httptest.NewRequest("GET", "/cart", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	req.Header.Set(SessionIDHeader, "sess-43")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "u-2", got["user_id"])
	assert.Equal(t, "sess-43", got["session_id"])
}

func TestOptionalAuth_InvalidTokenIsAnonymous(t *testing.T) {
	var got map[string]string
	h := OptionalAuth(okValidator(&Claims{UserID: "u-3"}))(captureHandler(&got))

	req := httptest.NewRequest("GET", "/cart", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", got["user_id"])
}

func TestRequireRole_Allowed(t *testing.T) {
	var got map[string]string
	inner := RequireRole("admin")(captureHandler(&got))
	h := Auth(okValidator(&Claims{UserID: "u-9", Role: "admin"}))(inner)

	req := httptest.NewRequest("GET", "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_Forbidden(t *testing.T) {
	inner := RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))
	h := Auth(okValidator(&Claims{UserID: "u-9", Role: "customer"}))(inner)

	req := httptest.NewRequest("GET", "/admin/orders", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
