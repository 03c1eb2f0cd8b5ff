package user

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/rpeck07/StudentoS/core"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountDeactivated = errors.New("account deactivated")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		// CreateUser fails with ErrUsernameExists if the username is taken.
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByUsername(ctx context.Context, username string) (User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

// Register validates nu and creates an active User.
func (svc *Service) Register(ctx context.Context, nu NewUser) (User, error) {
	if err := nu.Validate(svc.validate); err != nil {
		return User{}, err
	}

	now := nowFunc().UTC()
	usr := User{
		ID:        uuid.NewString(),
		Username:  nu.Username,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	return svc.repo.CreateUser(ctx, usr)
}

// Authenticate checks the credentials and records the login.
func (svc *Service) Authenticate(ctx context.Context, uname, pwd string) (User, error) {
	usr, err := svc.GetByUsername(ctx, uname)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Wrap(err, "finding user by username")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrInvalidCredentials
	}
	if !usr.IsActive {
		return User{}, ErrAccountDeactivated
	}

	usr.LastLogin = nowFunc().UTC()
	usr, err = svc.repo.UpdateUser(ctx, usr)
	if err != nil {
		return User{}, errors.Wrap(err, "setting lastLogin")
	}
	return usr, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByUsername(ctx context.Context, uname string) (User, error) {
	return svc.repo.GetUserByUsername(ctx, core.CleanString(uname, true /* lower */))
}

// SetPassword changes the password of an existing User.
func (svc *Service) SetPassword(ctx context.Context, sp SetPassword) (User, error) {
	if err := sp.Validate(svc.validate); err != nil {
		return User{}, err
	}
	usr, err := svc.repo.GetUserByUsername(ctx, sp.Username)
	if err != nil {
		return User{}, err
	}
	if err = usr.SetPassword(sp.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	usr.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

// AddUser creates the User, or reactivates it and resets its password if it exists.
func (svc *Service) AddUser(ctx context.Context, nu NewUser) (User, error) {
	usr, err := svc.Register(ctx, nu)
	if errors.Cause(err) != ErrUsernameExists {
		return usr, err
	}

	usr, err = svc.SetPassword(ctx, SetPassword{Username: nu.Username, Password: nu.Password})
	if err != nil {
		return User{}, err
	}
	if !usr.IsActive {
		usr.IsActive = true
		return svc.repo.UpdateUser(ctx, usr)
	}
	return usr, nil
}

// Deactivate blocks the User from logging in and refreshing tokens.
func (svc *Service) Deactivate(ctx context.Context, uname string) (User, error) {
	usr, err := svc.GetByUsername(ctx, uname)
	if err != nil {
		return User{}, err
	}
	usr.IsActive = false
	usr.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}
