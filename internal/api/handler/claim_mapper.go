package handler

import (
	"github.com/ucrmp/claims-platform/internal/core/ports"
)

func toClaimResponse(v ports.ClaimView) claimResponse {
	return claimResponse{
		ID:          v.ID,
		UserID:      v.OwnerID,
		ClaimType:   v.ClaimType,
		Amount:      v.Amount,
		Status:      v.Status,
		Description: v.Description,
		Metadata:    v.Metadata,
		CreatedAt:   v.CreatedAt.UTC(),
	}
}

func toListResponse(views []ports.ClaimView) listClaimsResponse {
	items := make([]claimResponse, len(views))
	for i, v := range views {
		items[i] = toClaimResponse(v)
	}
	return listClaimsResponse{Data: items}
}
