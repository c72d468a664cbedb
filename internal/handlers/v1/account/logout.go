package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/payments-portal/internal/auth"
	"github.com/carson-networks/payments-portal/internal/handlers/v1/apiutil"
)

type logouter interface {
	Logout(ctx context.Context, principal *auth.Principal) error
}

// LogoutHandler handles POST /auth/logout. The presented token stops
// authenticating immediately.
type LogoutHandler struct {
	AuthService logouter
}

func NewLogoutHandler(svc logouter) *LogoutHandler {
	return &LogoutHandler{AuthService: svc}
}

func (h *LogoutHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "logout",
		Method:        http.MethodPost,
		Path:          "/auth/logout",
		Summary:       "Log out",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusNoContent,
		Security:      apiutil.Secured,
	}, h.handle)
}

func (h *LogoutHandler) handle(ctx context.Context, _ *struct{}) (*struct{}, error) {
	principal, err := apiutil.Principal(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.AuthService.Logout(ctx, principal); err != nil {
		return nil, apiutil.Error(ctx, err, "failed to log out")
	}
	return nil, nil
}
