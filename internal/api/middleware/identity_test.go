package middleware

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ucrmp/claims-platform/internal/core/domain"
)

func runIdentity(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, *domain.TrustedIdentity) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured *domain.TrustedIdentity
	mw := TrustedIdentity()
	handler := mw(func(c echo.Context) error {
		id, ok := IdentityFromContext(c)
		if !ok {
			t.Fatalf("identity missing from context")
		}
		captured = &id
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, captured
}

func TestTrustedIdentity_RecoversIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/claims", nil)
	req.Header.Set(HeaderUserID, "u-1")
	req.Header.Set(HeaderUserEmail, "alice@example.com")
	req.Header.Set(HeaderUserRoles, "ROLE_EMPLOYEE,ROLE_ADMIN")

	rec, id := runIdentity(t, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := domain.TrustedIdentity{
		UserID: "u-1",
		Email:  "alice@example.com",
		Roles:  []string{"ROLE_EMPLOYEE", "ROLE_ADMIN"},
	}
	if !reflect.DeepEqual(*id, want) {
		t.Fatalf("unexpected identity: %+v", *id)
	}
}

// A request that bypassed the gateway carries no trust headers and must be
// rejected, never treated as anonymous.
func TestTrustedIdentity_MissingHeadersRejected(t *testing.T) {
	cases := map[string]func(h http.Header){
		"none":      func(h http.Header) {},
		"no id":     func(h http.Header) { h.Set(HeaderUserEmail, "a@x.com"); h.Set(HeaderUserRoles, "ROLE_EMPLOYEE") },
		"no email":  func(h http.Header) { h.Set(HeaderUserID, "u-1"); h.Set(HeaderUserRoles, "ROLE_EMPLOYEE") },
		"no roles":  func(h http.Header) { h.Set(HeaderUserID, "u-1"); h.Set(HeaderUserEmail, "a@x.com") },
	}

	for name, setup := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/claims", nil)
		setup(req.Header)

		rec, id := runIdentity(t, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, rec.Code)
		}
		if id != nil {
			t.Fatalf("%s: handler ran with fabricated identity %+v", name, *id)
		}
	}
}
