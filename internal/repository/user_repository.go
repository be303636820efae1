package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/apperrors"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
)

// UserRepository provides data access methods for the user table, including
// the balance mutations used by the portfolio ledger.
type UserRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) WithTx(tx *sql.Tx) *UserRepository {
	return &UserRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *UserRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const userColumns = `id, name, email, password, role, virtual_balance, created_at`

func scanUser(scan func(dest ...any) error) (model.User, error) {
	var u model.User
	var createdAt string

	err := scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Password,
		&u.Role,
		&u.VirtualBalance,
		&createdAt,
	)
	if err != nil {
		return model.User{}, err
	}

	if u.CreatedAt, err = parseStoredTime(createdAt); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// GetUsers retrieves all users. The password hash is included in the model
// but excluded from serialization.
func (r *UserRepository) GetUsers() ([]model.User, error) {
	rows, err := r.getQuerier().Query(`SELECT ` + userColumns + ` FROM user ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query user table: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user table results: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user table: %w", err)
	}

	return users, nil
}

// GetUser retrieves a single user by ID.
func (r *UserRepository) GetUser(id string) (model.User, error) {
	row := r.getQuerier().QueryRow(`SELECT `+userColumns+` FROM user WHERE id = ?`, id)

	u, err := scanUser(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query user table: %w", err)
	}
	return u, nil
}

// GetUserByEmail retrieves a single user by email.
func (r *UserRepository) GetUserByEmail(email string) (model.User, error) {
	row := r.getQuerier().QueryRow(`SELECT `+userColumns+` FROM user WHERE email = ?`, email)

	u, err := scanUser(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query user table: %w", err)
	}
	return u, nil
}

// InsertUser persists a new user. A duplicate email maps to ErrDuplicateEmail.
func (r *UserRepository) InsertUser(ctx context.Context, user *model.User) error {
	_, err := r.getQuerier().ExecContext(ctx, `
        INSERT INTO user (id, name, email, password, role, virtual_balance, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Name,
		user.Email,
		user.Password,
		user.Role,
		user.VirtualBalance,
		storeTime(user.CreatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicateEmail, err.Error())
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// DebitBalance subtracts amount from the user's virtual balance. The update
// is conditional on sufficient funds so that concurrent debits cannot drive
// the balance negative; an unmet condition maps to ErrInsufficientBalance.
func (r *UserRepository) DebitBalance(ctx context.Context, userID string, amount float64) error {
	result, err := r.getQuerier().ExecContext(ctx, `
        UPDATE user
        SET virtual_balance = virtual_balance - ?
        WHERE id = ? AND virtual_balance >= ?`,
		amount, userID, amount,
	)
	if err != nil {
		return fmt.Errorf("failed to debit balance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read debit result: %w", err)
	}
	if affected == 0 {
		// Either the user is gone or the balance check failed; the caller
		// has already confirmed the user exists inside this transaction.
		return apperrors.ErrInsufficientBalance
	}
	return nil
}

// CreditBalance adds amount to the user's virtual balance.
func (r *UserRepository) CreditBalance(ctx context.Context, userID string, amount float64) error {
	result, err := r.getQuerier().ExecContext(ctx, `
        UPDATE user SET virtual_balance = virtual_balance + ? WHERE id = ?`,
		amount, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read credit result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
