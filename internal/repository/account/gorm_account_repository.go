// File: internal/repository/account/gorm_account_repository.go
package account

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/carelink/carelink-server/internal/domain"
)

var ErrAccountNotFound = errors.New("account not found")

type gormAccountRepository struct {
	db *gorm.DB
}

func NewGormAccountRepository(db *gorm.DB) AccountRepository {
	return &gormAccountRepository{db: db}
}

func (r *gormAccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	if account.ID == "" || account.Email == "" {
		return nil, errors.New("account ID and email are required")
	}
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		return nil, err
	}
	return account, nil
}

func (r *gormAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error
	return handleFindError(err, &account)
}

func (r *gormAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error
	return handleFindError(err, &account)
}

func handleFindError(err error, account *domain.Account) (*domain.Account, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}
