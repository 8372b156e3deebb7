package sqlite

import (
	"context"
	"database/sql"
	"time"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type queries struct {
	db DBTX
}

func newQueries(db DBTX) *queries {
	return &queries{db: db}
}

type clientRow struct {
	ID           string
	Name         string
	SecretSealed []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const getClientByID = `
SELECT id, name, secret_sealed, created_at, updated_at
FROM clients
WHERE id = ?`

func (q *queries) GetClientByID(ctx context.Context, id string) (clientRow, error) {
	var r clientRow
	err := q.db.QueryRowContext(ctx, getClientByID, id).Scan(
		&r.ID, &r.Name, &r.SecretSealed, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

const listClients = `
SELECT id, name, secret_sealed, created_at, updated_at
FROM clients
ORDER BY created_at ASC, id ASC`

func (q *queries) ListClients(ctx context.Context) ([]clientRow, error) {
	rows, err := q.db.QueryContext(ctx, listClients)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []clientRow
	for rows.Next() {
		var r clientRow
		if err := rows.Scan(&r.ID, &r.Name, &r.SecretSealed, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const createClient = `
INSERT INTO clients (id, name, secret_sealed, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)`

func (q *queries) CreateClient(ctx context.Context, r clientRow) error {
	_, err := q.db.ExecContext(ctx, createClient, r.ID, r.Name, r.SecretSealed, r.CreatedAt, r.UpdatedAt)
	return err
}

const updateClientName = `UPDATE clients SET name = ?, updated_at = ? WHERE id = ?`

func (q *queries) UpdateClientName(ctx context.Context, id, name string, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateClientName, name, now, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const touchClient = `UPDATE clients SET updated_at = ? WHERE id = ?`

func (q *queries) TouchClient(ctx context.Context, id string, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, touchClient, now, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteClient = `DELETE FROM clients WHERE id = ?`

func (q *queries) DeleteClient(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteClient, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countClients = `SELECT COUNT(*) FROM clients`

func (q *queries) CountClients(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countClients).Scan(&n)
	return n, err
}

const listClientOrigins = `
SELECT origin
FROM client_origins
WHERE client_id = ?
ORDER BY position ASC`

func (q *queries) ListClientOrigins(ctx context.Context, clientID string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listClientOrigins, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var origin string
		if err := rows.Scan(&origin); err != nil {
			return nil, err
		}
		out = append(out, origin)
	}
	return out, rows.Err()
}

const insertClientOrigin = `
INSERT INTO client_origins (client_id, origin, position)
VALUES (?, ?, ?)
ON CONFLICT (client_id, origin) DO NOTHING`

func (q *queries) InsertClientOrigin(ctx context.Context, clientID, origin string, position int) error {
	_, err := q.db.ExecContext(ctx, insertClientOrigin, clientID, origin, position)
	return err
}

const deleteClientOrigins = `DELETE FROM client_origins WHERE client_id = ?`

func (q *queries) DeleteClientOrigins(ctx context.Context, clientID string) error {
	_, err := q.db.ExecContext(ctx, deleteClientOrigins, clientID)
	return err
}
