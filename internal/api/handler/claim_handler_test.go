package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ucrmp/claims-platform/internal/api/middleware"
	"github.com/ucrmp/claims-platform/internal/core/domain"
	"github.com/ucrmp/claims-platform/internal/core/ports"
)

type stubClaimService struct {
	createFn func(ctx context.Context, input ports.CreateClaimInput) (*ports.CreateClaimResult, error)
	listFn   func(ctx context.Context, ownerID string) ([]ports.ClaimView, error)
	getFn    func(ctx context.Context, input ports.GetClaimInput) (*ports.ClaimView, error)
}

func (s *stubClaimService) Create(ctx context.Context, input ports.CreateClaimInput) (*ports.CreateClaimResult, error) {
	return s.createFn(ctx, input)
}

func (s *stubClaimService) ListByOwner(ctx context.Context, ownerID string) ([]ports.ClaimView, error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubClaimService) Get(ctx context.Context, input ports.GetClaimInput) (*ports.ClaimView, error) {
	return s.getFn(ctx, input)
}

// callWithIdentity runs the handler behind the TrustedIdentity middleware,
// the same way the claim routes are wired.
func callWithIdentity(e *echo.Echo, req *http.Request, h echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	req.Header.Set(middleware.HeaderUserID, "u-1")
	req.Header.Set(middleware.HeaderUserEmail, "a@x.com")
	req.Header.Set(middleware.HeaderUserRoles, domain.RoleEmployee)

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := middleware.TrustedIdentity()(h)(c)
	return rec, err
}

func TestClaimHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubClaimService{
		createFn: func(ctx context.Context, input ports.CreateClaimInput) (*ports.CreateClaimResult, error) {
			if input.OwnerID != "u-1" {
				t.Fatalf("owner must come from identity headers, got %q", input.OwnerID)
			}
			if input.IdempotencyKey != "key-123" {
				t.Fatalf("unexpected idempotency key: %q", input.IdempotencyKey)
			}
			return &ports.CreateClaimResult{
				Claim: ports.ClaimView{
					ID:        "c-1",
					OwnerID:   input.OwnerID,
					ClaimType: input.ClaimType,
					Amount:    input.Amount,
					Status:    string(domain.StatusSubmitted),
					Metadata:  input.Metadata,
					CreatedAt: time.Now(),
				},
			}, nil
		},
	}
	handler := NewClaimHandler(stub)

	body := strings.NewReader(`{"claim_type":"TRAVEL","amount":120.50,"metadata":{"hotelName":"Hilton","flightNumber":"AA100"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Idempotency-Key", "key-123")

	rec, err := callWithIdentity(e, req, handler.Create)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp claimResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "c-1" || resp.UserID != "u-1" || resp.Status != "SUBMITTED" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestClaimHandler_Create_ReplayReturns200(t *testing.T) {
	e := newTestEcho()
	stub := &stubClaimService{
		createFn: func(ctx context.Context, input ports.CreateClaimInput) (*ports.CreateClaimResult, error) {
			return &ports.CreateClaimResult{
				Claim:          ports.ClaimView{ID: "c-1", OwnerID: input.OwnerID},
				AlreadyExisted: true,
			}, nil
		},
	}
	handler := NewClaimHandler(stub)

	body := strings.NewReader(`{"claim_type":"TRAVEL","amount":10,"metadata":{"hotelName":"H","flightNumber":"F1"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Idempotency-Key", "key-123")

	rec, err := callWithIdentity(e, req, handler.Create)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on replay, got %d", rec.Code)
	}
}

func TestClaimHandler_Create_MetadataErrorPropagates(t *testing.T) {
	e := newTestEcho()
	metaErr := &domain.MetadataError{Type: domain.ClaimTravel, Fields: []string{"hotelName is required"}}
	stub := &stubClaimService{
		createFn: func(ctx context.Context, input ports.CreateClaimInput) (*ports.CreateClaimResult, error) {
			return nil, metaErr
		},
	}
	handler := NewClaimHandler(stub)

	body := strings.NewReader(`{"claim_type":"TRAVEL","amount":10,"metadata":{"flightNumber":"F1"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	_, err := callWithIdentity(e, req, handler.Create)
	if !errors.Is(err, domain.ErrMetadataInvalid) {
		t.Fatalf("expected metadata error to propagate, got %v", err)
	}
}

func TestClaimHandler_Create_MissingIdentityHeaders(t *testing.T) {
	e := newTestEcho()
	handler := NewClaimHandler(&stubClaimService{
		createFn: func(ctx context.Context, input ports.CreateClaimInput) (*ports.CreateClaimResult, error) {
			t.Fatal("service must not be called without identity")
			return nil, nil
		},
	})

	body := strings.NewReader(`{"claim_type":"TRAVEL","amount":10,"metadata":{}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/claims", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := middleware.TrustedIdentity()(handler.Create)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestClaimHandler_List_ScopedToCaller(t *testing.T) {
	e := newTestEcho()
	stub := &stubClaimService{
		listFn: func(ctx context.Context, ownerID string) ([]ports.ClaimView, error) {
			if ownerID != "u-1" {
				t.Fatalf("list must be scoped to the caller, got %q", ownerID)
			}
			return []ports.ClaimView{{ID: "c-1", OwnerID: ownerID}}, nil
		},
	}
	handler := NewClaimHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/claims", nil)
	rec, err := callWithIdentity(e, req, handler.List)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listClaimsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != "c-1" {
		t.Fatalf("unexpected list: %+v", resp)
	}
}

func TestClaimHandler_Get_ForbiddenPropagates(t *testing.T) {
	e := newTestEcho()
	stub := &stubClaimService{
		getFn: func(ctx context.Context, input ports.GetClaimInput) (*ports.ClaimView, error) {
			if input.ClaimID != "c-9" || input.CallerID != "u-1" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return nil, domain.ErrForbidden
		},
	}
	handler := NewClaimHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/claims/c-9", nil)
	req.Header.Set(middleware.HeaderUserID, "u-1")
	req.Header.Set(middleware.HeaderUserEmail, "a@x.com")
	req.Header.Set(middleware.HeaderUserRoles, domain.RoleEmployee)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("c-9")

	err := middleware.TrustedIdentity()(handler.Get)(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden to propagate, got %v", err)
	}
}
