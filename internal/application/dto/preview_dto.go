package dto

import "time"

// PreviewEnterResponse token de vista previa fijado al tenant del admin.
type PreviewEnterResponse struct {
	PreviewToken string    `json:"preview_token"`
	TenantID     string    `json:"tenant_id"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// PreviewExitRequest token a invalidar.
type PreviewExitRequest struct {
	PreviewToken string `json:"preview_token"`
}

// PreviewExitResponse tenant canónico del admin tras salir.
type PreviewExitResponse struct {
	TenantID string `json:"tenant_id"`
}
