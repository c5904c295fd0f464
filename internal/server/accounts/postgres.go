package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmsantos/transferd/internal/common"
	"github.com/dmsantos/transferd/internal/dbx"
)

const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, account *Account) (*Account, error) {

	query :=
		`INSERT INTO accounts (id, username, password_hash, balance, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.Username, account.PasswordHash, account.Balance, account.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	for _, favorite := range account.Favorites {
		if err := r.insertFavorite(ctx, account.ID, favorite); err != nil {
			return nil, err
		}
	}

	return account.Clone(), nil
}

func (r *PostgresRepository) insertFavorite(ctx context.Context, accountID, favorite string) error {
	query :=
		`INSERT INTO account_favorites (account_id, favorite)
		 VALUES ($1, $2)
		 ON CONFLICT (account_id, favorite) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, accountID, favorite); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*Account, error) {
	query :=
		`SELECT id, username, password_hash, balance, created_at FROM accounts
		 WHERE username = $1
		 `

	account := &Account{}
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&account.ID, &account.Username, &account.PasswordHash, &account.Balance, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	favorites, err := r.favoritesFor(ctx, account.ID)
	if err != nil {
		return nil, err
	}
	account.Favorites = favorites

	return account, nil
}

func (r *PostgresRepository) favoritesFor(ctx context.Context, accountID string) ([]string, error) {
	query :=
		`SELECT favorite FROM account_favorites
		 WHERE account_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var favorites []string
	for rows.Next() {
		var favorite string
		if err := rows.Scan(&favorite); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		favorites = append(favorites, favorite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return favorites, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Account, error) {
	query :=
		`SELECT id, username, password_hash, balance, created_at FROM accounts
		 ORDER BY created_at, username
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*Account
	for rows.Next() {
		account := &Account{}
		if err := rows.Scan(&account.ID, &account.Username, &account.PasswordHash, &account.Balance, &account.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	for _, account := range out {
		favorites, err := r.favoritesFor(ctx, account.ID)
		if err != nil {
			return nil, err
		}
		account.Favorites = favorites
	}

	return out, nil
}

func (r *PostgresRepository) ApplyDelta(ctx context.Context, username string, delta int64) (int64, error) {
	query :=
		`UPDATE accounts SET balance = balance + $1
		 WHERE username = $2
		 RETURNING balance
		 `

	var balance int64
	err := r.db.QueryRowContext(ctx, query, delta, username).Scan(&balance)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return balance, nil
}

func (r *PostgresRepository) AddFavorite(ctx context.Context, username, favorite string) error {
	query :=
		`SELECT id FROM accounts
		 WHERE username = $1
		 `

	var accountID string
	err := r.db.QueryRowContext(ctx, query, username).Scan(&accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}

	return r.insertFavorite(ctx, accountID, favorite)
}
