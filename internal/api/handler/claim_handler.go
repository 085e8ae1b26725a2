package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ucrmp/claims-platform/internal/api/middleware"
	"github.com/ucrmp/claims-platform/internal/core/ports"
)

// ClaimHandler handles HTTP requests for claim operations. It trusts the
// identity recovered by the TrustedIdentity middleware; the owner of a new
// claim always comes from there, never from the payload.
type ClaimHandler struct {
	service ports.ClaimService
}

func NewClaimHandler(service ports.ClaimService) *ClaimHandler {
	return &ClaimHandler{service: service}
}

// Create handles POST /api/v1/claims.
//
// @Summary      Submit a new claim
// @Tags         claims
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string              false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createClaimRequest  true   "Claim details"
// @Success      201              {object}  claimResponse
// @Success      200              {object}  claimResponse  "Replay of an earlier submission"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Router       /api/v1/claims [post]
func (h *ClaimHandler) Create(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "missing identity headers")
	}

	var req createClaimRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Create(c.Request().Context(), ports.CreateClaimInput{
		OwnerID:        identity.UserID,
		ClaimType:      req.ClaimType,
		Amount:         req.Amount,
		Description:    req.Description,
		Metadata:       req.Metadata,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, toClaimResponse(result.Claim))
}

// List handles GET /api/v1/claims — all claims owned by the caller.
//
// @Summary      List the caller's claims
// @Tags         claims
// @Produce      json
// @Success      200  {object}  listClaimsResponse
// @Failure      400  {object}  errorResponse
// @Router       /api/v1/claims [get]
func (h *ClaimHandler) List(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "missing identity headers")
	}

	views, err := h.service.ListByOwner(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(views))
}

// Get handles GET /api/v1/claims/:id.
//
// @Summary      Get a single claim
// @Tags         claims
// @Produce      json
// @Param        id  path      string  true  "Claim ID"
// @Success      200  {object}  claimResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/claims/{id} [get]
func (h *ClaimHandler) Get(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "missing identity headers")
	}

	view, err := h.service.Get(c.Request().Context(), ports.GetClaimInput{
		ClaimID:     c.Param("id"),
		CallerID:    identity.UserID,
		CallerRoles: identity.Roles,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toClaimResponse(*view))
}
