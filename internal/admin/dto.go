// AngelaMos | 2026
// dto.go

package admin

import (
	"time"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=80"`
	Password string `json:"password" validate:"required,min=1,max=128"`
}

type LoginResponse struct {
	Username  string    `json:"username"`
	CSRFToken string    `json:"csrf_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CSRFResponse struct {
	CSRFToken string `json:"csrf_token"`
}
