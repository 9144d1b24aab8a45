// File: internal/repository/account/interface.go
package account

import (
	"context"

	"github.com/carelink/carelink-server/internal/domain"
)

// AccountRepository persists login identities.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
}
