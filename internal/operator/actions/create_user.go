package actions

import (
	"context"

	"github.com/carson-networks/payments-portal/internal/storage"
	"github.com/carson-networks/payments-portal/internal/storage/sqlconfig"
)

type CreateUser struct {
	Create sqlconfig.UserCreate

	Created *sqlconfig.User
	IAction
}

func (c *CreateUser) Perform(ctx context.Context, writer *storage.Writer) error {
	user, err := writer.Users.Insert(ctx, &c.Create)
	if err != nil {
		return err
	}

	c.Created = user
	return nil
}
