package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"bachelorious/pkg/customerror"
	"bachelorious/pkg/user"
)

type UserRepositoryI interface {
	GetAccounts(ctx context.Context) ([]user.StoredAccount, error)
	SaveAccounts(ctx context.Context, accounts []user.StoredAccount) error
	GetSession(ctx context.Context) (*user.Account, error)
	SaveSession(ctx context.Context, account *user.Account) error
	DeleteSession(ctx context.Context) error
}

type UserRepository struct {
	Store KeyValueStoreI
}

func NewUserRepository(store KeyValueStoreI) *UserRepository {
	return &UserRepository{
		Store: store,
	}
}

func corrupt(module, endpoint, detail string) error {
	return customerror.WrapError(module, endpoint, fmt.Errorf("%w: %s", customerror.ErrCorruptState, detail))
}

// GetAccounts returns the registry in stored order. A registry that was never
// written is empty.
func (userRepo *UserRepository) GetAccounts(ctx context.Context) ([]user.StoredAccount, error) {
	raw, ok, err := userRepo.Store.Load(ctx, AccountsKey)
	if err != nil {
		return nil, customerror.AppendModule(err, "userRepo.GetAccounts")
	}
	accounts := []user.StoredAccount{}
	if !ok {
		return accounts, nil
	}
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, corrupt("userRepo.GetAccounts", userRepo.Store.Endpoint(), err.Error())
	}
	if accounts == nil {
		accounts = []user.StoredAccount{}
	}
	for i, account := range accounts {
		if !account.Role.Valid() {
			return nil, corrupt("userRepo.GetAccounts", userRepo.Store.Endpoint(), fmt.Sprintf("account %d has unknown role %q", i, account.Role))
		}
	}
	return accounts, nil
}

func (userRepo *UserRepository) SaveAccounts(ctx context.Context, accounts []user.StoredAccount) error {
	if accounts == nil {
		accounts = []user.StoredAccount{}
	}
	raw, err := json.Marshal(accounts)
	if err != nil {
		return customerror.NewError("userRepo.SaveAccounts", userRepo.Store.Endpoint(), err.Error())
	}
	if err := userRepo.Store.Save(ctx, AccountsKey, raw); err != nil {
		return customerror.AppendModule(err, "userRepo.SaveAccounts")
	}
	return nil
}

// GetSession returns the persisted session snapshot, or nil when nobody is
// logged in.
func (userRepo *UserRepository) GetSession(ctx context.Context) (*user.Account, error) {
	raw, ok, err := userRepo.Store.Load(ctx, SessionKey)
	if err != nil {
		return nil, customerror.AppendModule(err, "userRepo.GetSession")
	}
	if !ok {
		return nil, nil
	}
	var account *user.Account
	if err := json.Unmarshal(raw, &account); err != nil {
		return nil, corrupt("userRepo.GetSession", userRepo.Store.Endpoint(), err.Error())
	}
	if account == nil {
		return nil, nil
	}
	if !account.Role.Valid() {
		return nil, corrupt("userRepo.GetSession", userRepo.Store.Endpoint(), fmt.Sprintf("session has unknown role %q", account.Role))
	}
	return account, nil
}

func (userRepo *UserRepository) SaveSession(ctx context.Context, account *user.Account) error {
	raw, err := json.Marshal(account)
	if err != nil {
		return customerror.NewError("userRepo.SaveSession", userRepo.Store.Endpoint(), err.Error())
	}
	if err := userRepo.Store.Save(ctx, SessionKey, raw); err != nil {
		return customerror.AppendModule(err, "userRepo.SaveSession")
	}
	return nil
}

func (userRepo *UserRepository) DeleteSession(ctx context.Context) error {
	if err := userRepo.Store.Remove(ctx, SessionKey); err != nil {
		return customerror.AppendModule(err, "userRepo.DeleteSession")
	}
	return nil
}
