package account

import (
	"time"

	"github.com/carson-networks/payments-portal/internal/service"
)

// User is the API response model for a user. Credentials are never returned.
type User struct {
	ID        string `json:"id" doc:"User UUID"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	IDNumber  string `json:"idNumber" doc:"National identity number"`
	Email     string `json:"email"`
	Role      string `json:"role" enum:"user,admin"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 registration time"`
}

// RegistrationBody is the request body for creating a user or an admin.
type RegistrationBody struct {
	Name     string `json:"name" required:"true" minLength:"1"`
	Surname  string `json:"surname" required:"true" minLength:"1"`
	IDNumber string `json:"idNumber" required:"true" minLength:"1"`
	Email    string `json:"email" required:"true" minLength:"3"`
	Password string `json:"password" required:"true" minLength:"8"`
}

func (b RegistrationBody) ToService() service.Registration {
	return service.Registration{
		Name:     b.Name,
		Surname:  b.Surname,
		IDNumber: b.IDNumber,
		Email:    b.Email,
		Password: b.Password,
	}
}

func FromService(u service.User) User {
	return User{
		ID:        u.ID.String(),
		Name:      u.Name,
		Surname:   u.Surname,
		IDNumber:  u.IDNumber,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// UserOutput is the Huma output for endpoints returning a single user.
type UserOutput struct {
	Body User
}
