package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/codedaily/core"
)

var (
	// errors
	ErrNotFound    = core.NewNotFoundError("user")
	ErrEmailExists = errors.New("a user with this email already exists")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excludedUsers ...User) error
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) CheckUniqueness(ctx context.Context, email string, exclUsers ...User) error {
	if err := svc.repo.CheckEmailUniqueness(ctx, email, exclUsers...); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	role := nu.Role
	if role == "" {
		role = RoleStudent
	}
	usr := User{
		ID:         uuid.NewString(),
		Email:      nu.Email,
		FullName:   nu.FullName,
		Role:       role,
		IsActive:   true,
		IsStaff:    role == RoleAdmin,
		DateJoined: time.Now().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) SetLastLogin(ctx context.Context, usr User) (User, error) {
	usr.LastLogin = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *Service) SetPassword(ctx context.Context, usr User, pwd string) (User, error) {
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, err
	}
	return svc.repo.UpdateUser(ctx, usr)
}

// AddOrUpdate creates the User with the given email or updates its password (and admin rights) when it exists.
func (svc *Service) AddOrUpdate(ctx context.Context, cp ChangePassword, isAdmin bool) (User, bool, error) {
	usr, err := svc.repo.GetUserByEmail(ctx, cp.Email)
	if err != nil {
		if !core.IsNotFound(err) {
			return User{}, false, err
		}
		role := RoleStudent
		if isAdmin {
			role = RoleAdmin
		}
		usr, err = svc.Create(ctx, NewUser{Email: cp.Email, FullName: cp.FullName, Password: cp.Password, Role: role})
		return usr, true, err
	}

	if isAdmin {
		usr.Role = RoleAdmin
		usr.IsStaff = true
	}
	if cp.FullName != "" {
		usr.FullName = cp.FullName
	}
	usr.IsActive = true
	usr, err = svc.SetPassword(ctx, usr, cp.Password)
	return usr, false, err
}
