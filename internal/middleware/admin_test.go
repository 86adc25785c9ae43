package middleware

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRoleStore struct {
	role  string
	err   error
	calls int
}

func (f *fakeRoleStore) GetRole(ctx context.Context, userID string) (string, error) {
	f.calls++
	return f.role, f.err
}

func adminChain(roles RoleStore) (http.Handler, *bool) {
	reached := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	logger := log.New(io.Discard, "", 0)
	return RequireUserID(RequireAdmin(roles, logger)(inner)), &reached
}

func TestRequireAdmin_AdminAdmitted(t *testing.T) {
	h, reached := adminChain(&fakeRoleStore{role: "admin"})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	req.Header.Set(HeaderUserID, "u1")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, *reached)
}

func TestRequireAdmin_NonAdminDenied(t *testing.T) {
	store := &fakeRoleStore{role: "customer"}
	h, reached := adminChain(store)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	req.Header.Set(HeaderUserID, "u1")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, *reached, "admin handler must not run for non-admins")
	assert.Equal(t, 1, store.calls)
}

func TestRequireAdmin_LookupFailureFailsClosed(t *testing.T) {
	h, reached := adminChain(&fakeRoleStore{err: errors.New("db down")})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	req.Header.Set(HeaderUserID, "u1")
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, *reached)
}

func TestRequireUserID_MissingHeader(t *testing.T) {
	store := &fakeRoleStore{role: "admin"}
	h, reached := adminChain(store)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *reached)
	assert.Zero(t, store.calls, "no role fetch without an authenticated user")
}

func TestRequireUserID_StoresIDInContext(t *testing.T) {
	var got string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUserID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "  u42  ")
	rr := httptest.NewRecorder()

	RequireUserID(inner).ServeHTTP(rr, req)

	require.Equal(t, "u42", got)
}
