package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"bachelorious/internal/repository"
	"bachelorious/pkg/config"
	"bachelorious/pkg/customerror"
	"bachelorious/pkg/user"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const idRetries = 10

type SessionServiceI interface {
	Restore() error
	Register(email string, password string, name string, role user.Role, phone string) (*user.Account, error)
	Login(email string, password string) (*user.Account, error)
	Logout() error
	CurrentUser() *user.Account
	UpdateProfile(accountId string, update user.ProfileUpdate) (*user.Account, error)
	IsLoading() bool
}

// SessionService owns the single active identity and the account registry.
// Passwords are stored and compared as plain text; nothing here hashes them.
type SessionService struct {
	userRepo  repository.UserRepositoryI
	log       zerolog.Logger
	timeout   time.Duration
	authDelay time.Duration

	mu      sync.Mutex
	current *user.Account
	loading atomic.Bool
}

// NewSessionService reports loading until Restore has run.
func NewSessionService(userRepo repository.UserRepositoryI, appConfig *config.Config, log zerolog.Logger) *SessionService {
	sessionService := &SessionService{
		userRepo:  userRepo,
		log:       log.With().Str("component", "session").Logger(),
		timeout:   appConfig.OperationTimeout,
		authDelay: appConfig.AuthDelay,
	}
	sessionService.loading.Store(true)
	return sessionService
}

func (sessionService *SessionService) newContext() (context.Context, context.CancelFunc) {
	timeout := sessionService.timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	return context.WithTimeout(context.Background(), timeout)
}

// Restore loads the persisted session snapshot. It is called once at start.
// On failure the process continues with nobody logged in.
func (sessionService *SessionService) Restore() error {
	sessionService.mu.Lock()
	defer sessionService.mu.Unlock()
	sessionService.loading.Store(true)
	defer sessionService.loading.Store(false)
	ctx, cancel := sessionService.newContext()
	defer cancel()
	account, err := sessionService.userRepo.GetSession(ctx)
	if err != nil {
		sessionService.current = nil
		if errors.Is(err, customerror.ErrCorruptState) {
			sessionService.log.Warn().Err(err).Msg("session snapshot is corrupt, starting logged out")
		}
		return customerror.AppendModule(err, "SessionService.Restore")
	}
	sessionService.current = account
	return nil
}

func (sessionService *SessionService) simulateLatency() {
	if sessionService.authDelay > 0 {
		time.Sleep(sessionService.authDelay)
	}
}

func newAccountId(accounts []user.StoredAccount) (string, error) {
	for retries := 0; retries < idRetries; retries++ {
		id, err := uuid.NewV7()
		if err != nil {
			return "", customerror.NewError("SessionService.newAccountId", "uuid", err.Error())
		}
		taken := false
		for _, account := range accounts {
			if account.Id == id.String() {
				taken = true
				break
			}
		}
		if !taken {
			return id.String(), nil
		}
	}
	return "", customerror.NewError("SessionService.newAccountId", "uuid", "could not allocate a unique id")
}

func (sessionService *SessionService) Register(email string, password string, name string, role user.Role, phone string) (*user.Account, error) {
	sessionService.mu.Lock()
	defer sessionService.mu.Unlock()
	sessionService.loading.Store(true)
	defer sessionService.loading.Store(false)
	sessionService.simulateLatency()

	if !role.Valid() {
		return nil, customerror.WrapError("SessionService.Register", "", fmt.Errorf("%w: unknown role %q", customerror.ErrInvalidInput, role))
	}
	ctx, cancel := sessionService.newContext()
	defer cancel()
	accounts, err := sessionService.userRepo.GetAccounts(ctx)
	if err != nil {
		return nil, customerror.AppendModule(err, "SessionService.Register")
	}
	for _, account := range accounts {
		if account.Email == email {
			return nil, customerror.ErrUserAlreadyExists
		}
	}
	id, err := newAccountId(accounts)
	if err != nil {
		return nil, err
	}
	newAccount := user.StoredAccount{
		Account: user.Account{
			Id:    id,
			Email: email,
			Name:  name,
			Role:  role,
			Phone: phone,
		},
		Password: password,
	}
	accounts = append(accounts, newAccount)
	if err := sessionService.userRepo.SaveAccounts(ctx, accounts); err != nil {
		return nil, customerror.AppendModule(err, "SessionService.Register")
	}
	session := newAccount.Account
	if err := sessionService.userRepo.SaveSession(ctx, &session); err != nil {
		return nil, customerror.AppendModule(err, "SessionService.Register")
	}
	sessionService.current = &session
	sessionService.log.Info().Str("account_id", id).Str("role", string(role)).Msg("account registered")
	out := session
	return &out, nil
}

func (sessionService *SessionService) Login(email string, password string) (*user.Account, error) {
	sessionService.mu.Lock()
	defer sessionService.mu.Unlock()
	sessionService.loading.Store(true)
	defer sessionService.loading.Store(false)
	sessionService.simulateLatency()

	ctx, cancel := sessionService.newContext()
	defer cancel()
	accounts, err := sessionService.userRepo.GetAccounts(ctx)
	if err != nil {
		return nil, customerror.AppendModule(err, "SessionService.Login")
	}
	for _, account := range accounts {
		if account.Email != email || account.Password != password {
			continue
		}
		session := account.Account
		if err := sessionService.userRepo.SaveSession(ctx, &session); err != nil {
			return nil, customerror.AppendModule(err, "SessionService.Login")
		}
		sessionService.current = &session
		sessionService.log.Info().Str("account_id", session.Id).Msg("logged in")
		out := session
		return &out, nil
	}
	sessionService.log.Info().Str("email", email).Msg("login failed")
	return nil, customerror.ErrWrongCredentials
}

// Logout is safe to call when nobody is logged in.
func (sessionService *SessionService) Logout() error {
	sessionService.mu.Lock()
	defer sessionService.mu.Unlock()
	sessionService.current = nil
	ctx, cancel := sessionService.newContext()
	defer cancel()
	if err := sessionService.userRepo.DeleteSession(ctx); err != nil {
		return customerror.AppendModule(err, "SessionService.Logout")
	}
	return nil
}

func (sessionService *SessionService) CurrentUser() *user.Account {
	sessionService.mu.Lock()
	defer sessionService.mu.Unlock()
	if sessionService.current == nil {
		return nil
	}
	out := *sessionService.current
	return &out
}

// UpdateProfile overwrites name, email and phone on the registry entry and,
// when it is the active account, on the session snapshot. The session is
// rewritten even if the registry has no entry for it. ErrNotFound means the
// id is neither registered nor logged in. The new email is not checked
// against other accounts.
func (sessionService *SessionService) UpdateProfile(accountId string, update user.ProfileUpdate) (*user.Account, error) {
	sessionService.mu.Lock()
	defer sessionService.mu.Unlock()
	ctx, cancel := sessionService.newContext()
	defer cancel()
	accounts, err := sessionService.userRepo.GetAccounts(ctx)
	if err != nil {
		return nil, customerror.AppendModule(err, "SessionService.UpdateProfile")
	}
	index := -1
	for i := range accounts {
		if accounts[i].Id == accountId {
			index = i
			break
		}
	}
	active := sessionService.current != nil && sessionService.current.Id == accountId
	if index == -1 && !active {
		return nil, customerror.ErrNotFound
	}

	var out user.Account
	if active {
		session := *sessionService.current
		update.Apply(&session)
		if err := sessionService.userRepo.SaveSession(ctx, &session); err != nil {
			return nil, customerror.AppendModule(err, "SessionService.UpdateProfile")
		}
		sessionService.current = &session
		out = session
	}
	if index != -1 {
		update.Apply(&accounts[index].Account)
		if err := sessionService.userRepo.SaveAccounts(ctx, accounts); err != nil {
			return nil, customerror.AppendModule(err, "SessionService.UpdateProfile")
		}
		out = accounts[index].Account
	} else {
		sessionService.log.Warn().Str("account_id", accountId).Msg("active account missing from registry, session updated only")
	}
	return &out, nil
}

func (sessionService *SessionService) IsLoading() bool {
	return sessionService.loading.Load()
}
