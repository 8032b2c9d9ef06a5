package directory

import (
	"context"
)

type Client interface {
	Login(ctx context.Context) error
	GetUser(ctx context.Context, upn string) (*User, error)
	GetTenantID(ctx context.Context, domain string) (string, error)
}
