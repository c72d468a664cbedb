package account

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/payments-portal/internal/handlers/v1/apiutil"
	"github.com/carson-networks/payments-portal/internal/service"
)

type RegisterInput struct {
	Body RegistrationBody
}

type registerer interface {
	Register(ctx context.Context, reg service.Registration) (*service.User, error)
}

// RegisterHandler handles POST /auth/register.
type RegisterHandler struct {
	AuthService registerer
}

func NewRegisterHandler(svc registerer) *RegisterHandler {
	return &RegisterHandler{AuthService: svc}
}

func (h *RegisterHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/auth/register",
		Summary:       "Register",
		Description:   "Creates a regular user account.",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *RegisterHandler) handle(ctx context.Context, input *RegisterInput) (*UserOutput, error) {
	user, err := h.AuthService.Register(ctx, input.Body.ToService())
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to register")
	}
	return &UserOutput{Body: FromService(*user)}, nil
}
