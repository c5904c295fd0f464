package transfers

import (
	"context"
	"fmt"

	"github.com/dmsantos/transferd/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, transfer *Transfer) (*Transfer, error) {

	query :=
		`INSERT INTO transfers (id, from_username, to_username, value, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		transfer.ID, transfer.From, transfer.To, transfer.Value, transfer.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return transfer, nil
}

func (r *PostgresRepository) ListByParticipant(ctx context.Context, username string) ([]*Transfer, error) {
	query :=
		`SELECT id, from_username, to_username, value, created_at FROM transfers
		 WHERE from_username = $1 OR to_username = $1
		 ORDER BY created_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]*Transfer, 0)
	for rows.Next() {
		t := &Transfer{}
		if err := rows.Scan(&t.ID, &t.From, &t.To, &t.Value, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}
