package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/codedaily/core/user"
)

const userColumns = "id, email, full_name, role, is_active, is_staff, password_hash, date_joined, last_login"

type userRow struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	FullName     string    `db:"full_name"`
	Role         string    `db:"role"`
	IsActive     bool      `db:"is_active"`
	IsStaff      bool      `db:"is_staff"`
	PasswordHash []byte    `db:"password_hash"`
	DateJoined   time.Time `db:"date_joined"`
	LastLogin    null.Time `db:"last_login"`
}

func toUserRow(usr user.User) userRow {
	return userRow{
		ID:           usr.ID,
		Email:        usr.Email,
		FullName:     usr.FullName,
		Role:         usr.Role,
		IsActive:     usr.IsActive,
		IsStaff:      usr.IsStaff,
		PasswordHash: usr.PasswordHash,
		DateJoined:   usr.DateJoined.UTC(),
		LastLogin:    null.NewTime(usr.LastLogin.UTC(), !usr.LastLogin.IsZero()),
	}
}

func (r userRow) user() user.User {
	return user.User{
		ID:           r.ID,
		Email:        r.Email,
		FullName:     r.FullName,
		Role:         r.Role,
		IsActive:     r.IsActive,
		IsStaff:      r.IsStaff,
		PasswordHash: r.PasswordHash,
		DateJoined:   r.DateJoined.UTC(),
		LastLogin:    r.LastLogin.Time.UTC(),
	}
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedUsers ...user.User) error {
	query, args := "SELECT COUNT(*) FROM users WHERE email = ?", []interface{}{email}
	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, u := range excludedUsers {
			ids = append(ids, u.ID)
		}
		var err error
		if query, args, err = sqlx.In(query+" AND id NOT IN (?)", email, ids); err != nil {
			return errors.Wrap(err, "checking email uniqueness")
		}
	}

	var count int
	if err := repo.db.GetContext(ctx, &count, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if count > 0 {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	row := toUserRow(usr)
	_, err := repo.db.ExecContext(ctx, repo.db.Rebind(
		"INSERT INTO users ("+userColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		row.ID, row.Email, row.FullName, row.Role, row.IsActive, row.IsStaff, row.PasswordHash, row.DateJoined, row.LastLogin,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return row.user(), nil
}

func (repo *userRepository) getUser(ctx context.Context, where string, arg interface{}) (user.User, error) {
	var row userRow
	q := repo.db.Rebind("SELECT " + userColumns + " FROM users WHERE " + where + " = ?")
	if err := repo.db.GetContext(ctx, &row, q, arg); err != nil {
		return user.User{}, trapNoRowsErr(err, user.ErrNotFound, "finding user")
	}
	return row.user(), nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return user.User{}, user.ErrNotFound
	}
	return repo.getUser(ctx, "id", id)
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return repo.getUser(ctx, "email", email)
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	row := toUserRow(usr)
	res, err := repo.db.ExecContext(ctx, repo.db.Rebind(
		"UPDATE users SET email = ?, full_name = ?, role = ?, is_active = ?, is_staff = ?, password_hash = ?, last_login = ? WHERE id = ?"),
		row.Email, row.FullName, row.Role, row.IsActive, row.IsStaff, row.PasswordHash, row.LastLogin, row.ID,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return repo.GetUserByID(ctx, usr.ID)
}
