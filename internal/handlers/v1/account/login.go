package account

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/payments-portal/internal/handlers/v1/apiutil"
	"github.com/carson-networks/payments-portal/internal/logging"
	"github.com/carson-networks/payments-portal/internal/service"
)

type LoginBody struct {
	Email    string `json:"email" required:"true" minLength:"1"`
	Password string `json:"password" required:"true" minLength:"1"`
}

type LoginInput struct {
	Body LoginBody
}

type LoginResponse struct {
	Token     string `json:"token" doc:"Bearer token for the Authorization header"`
	ExpiresAt string `json:"expiresAt" doc:"RFC3339 token expiry"`
	User      User   `json:"user"`
}

type LoginOutput struct {
	Body LoginResponse
}

type loginer interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
}

// LoginHandler handles POST /auth/login.
type LoginHandler struct {
	AuthService loginer
}

func NewLoginHandler(svc loginer) *LoginHandler {
	return &LoginHandler{AuthService: svc}
}

func (h *LoginHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Log in",
		Description: "Exchanges email and password for a bearer token.",
		Tags:        []string{"Auth"},
	}, h.handle)
}

func (h *LoginHandler) handle(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	result, err := h.AuthService.Login(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, apiutil.Error(ctx, err, "failed to log in")
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("userID", result.User.ID.String())
	}
	return &LoginOutput{Body: LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
		User:      FromService(result.User),
	}}, nil
}
