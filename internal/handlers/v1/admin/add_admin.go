package admin

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/payments-portal/internal/auth"
	"github.com/carson-networks/payments-portal/internal/handlers/v1/account"
	"github.com/carson-networks/payments-portal/internal/handlers/v1/apiutil"
	"github.com/carson-networks/payments-portal/internal/service"
)

type AddAdminInput struct {
	Body account.RegistrationBody
}

type adminCreator interface {
	AddAdmin(ctx context.Context, principal *auth.Principal, reg service.Registration) (*service.User, error)
}

// AddAdminHandler handles POST /admin/add-admin.
type AddAdminHandler struct {
	AuthService adminCreator
}

func NewAddAdminHandler(svc adminCreator) *AddAdminHandler {
	return &AddAdminHandler{AuthService: svc}
}

func (h *AddAdminHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "add-admin",
		Method:        http.MethodPost,
		Path:          "/admin/add-admin",
		Summary:       "Add admin",
		Description:   "Creates another administrator account.",
		Tags:          []string{"Admin"},
		DefaultStatus: http.StatusCreated,
		Security:      apiutil.Secured,
	}, h.handle)
}

func (h *AddAdminHandler) handle(ctx context.Context, input *AddAdminInput) (*account.UserOutput, error) {
	principal, err := apiutil.Principal(ctx)
	if err != nil {
		return nil, err
	}

	user, err := h.AuthService.AddAdmin(ctx, principal, input.Body.ToService())
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to add admin")
	}
	return &account.UserOutput{Body: account.FromService(*user)}, nil
}
