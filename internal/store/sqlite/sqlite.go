package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/money"
	"github.com/Dawn-Fighter/Mandi-Counter/internal/store"
)

// New opens (or creates) a SQLite database file, ensures the schema, and
// returns a store.Store.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewWithDB(db)
}

// NewWithDB allows wiring with an existing connection (used by tests and the
// store factory).
func NewWithDB(db *sql.DB) (store.Store, error) {
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Entries() store.Entries { return &entries{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS entries (
            entry_id        TEXT PRIMARY KEY,
            owner_id        TEXT NOT NULL,
            entry_date      TEXT NOT NULL,
            location        TEXT NOT NULL,
            total_amount    REAL NOT NULL,
            party_size      INTEGER NOT NULL,
            per_person_cost REAL NOT NULL,
            notes           TEXT,
            created_at      TIMESTAMP NOT NULL,
            updated_at      TIMESTAMP NOT NULL
        );
        CREATE INDEX IF NOT EXISTS entries_owner_date_idx
            ON entries (owner_id, entry_date DESC);
    `)
	return err
}

type entries struct{ db *sql.DB }

func (e *entries) Create(ctx context.Context, m *model.Entry) (*model.Entry, error) {
	out := *m
	out.ID = uuid.New().String()
	now := time.Now().UTC()
	out.CreatedAt = now
	out.UpdatedAt = now
	out.PerPersonCost = money.PerPersonCost(out.TotalAmount, out.PartySize)

	_, err := e.db.ExecContext(ctx, `
        INSERT INTO entries
            (entry_id, owner_id, entry_date, location, total_amount, party_size, per_person_cost, notes, created_at, updated_at)
        VALUES (?,?,?,?,?,?,?,?,?,?)
    `, out.ID, out.OwnerID, out.Date, out.Location, out.TotalAmount, out.PartySize, out.PerPersonCost, out.Notes, out.CreatedAt, out.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (e *entries) GetByID(ctx context.Context, ownerID, entryID string) (*model.Entry, error) {
	row := e.db.QueryRowContext(ctx, `
        SELECT entry_id, owner_id, entry_date, location, total_amount, party_size, per_person_cost, notes, created_at, updated_at
        FROM entries WHERE owner_id=? AND entry_id=?
    `, ownerID, entryID)
	return scanEntry(row)
}

func (e *entries) ListByOwner(ctx context.Context, ownerID string) ([]*model.Entry, error) {
	// rowid stands in for insertion order within a date
	rows, err := e.db.QueryContext(ctx, `
        SELECT entry_id, owner_id, entry_date, location, total_amount, party_size, per_person_cost, notes, created_at, updated_at
        FROM entries WHERE owner_id=?
        ORDER BY entry_date DESC, rowid DESC
    `, ownerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var res []*model.Entry
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

func (e *entries) Update(ctx context.Context, ownerID, entryID string, patch model.EntryPatch) (*model.Entry, error) {
	tx, err := e.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
        SELECT entry_id, owner_id, entry_date, location, total_amount, party_size, per_person_cost, notes, created_at, updated_at
        FROM entries WHERE owner_id=? AND entry_id=?
    `, ownerID, entryID)
	cur, err := scanEntry(row)
	if err != nil {
		return nil, err
	}

	applyPatch(cur, patch)
	cur.UpdatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx, `
        UPDATE entries
        SET entry_date=?, location=?, total_amount=?, party_size=?, per_person_cost=?, notes=?, updated_at=?
        WHERE owner_id=? AND entry_id=?
    `, cur.Date, cur.Location, cur.TotalAmount, cur.PartySize, cur.PerPersonCost, cur.Notes, cur.UpdatedAt, ownerID, entryID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return cur, nil
}

func (e *entries) Delete(ctx context.Context, ownerID, entryID string) error {
	res, err := e.db.ExecContext(ctx, `DELETE FROM entries WHERE owner_id=? AND entry_id=?`, ownerID, entryID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func applyPatch(m *model.Entry, p model.EntryPatch) {
	if p.Date != nil {
		m.Date = *p.Date
	}
	if p.Location != nil {
		m.Location = *p.Location
	}
	if p.TotalAmount != nil {
		m.TotalAmount = *p.TotalAmount
	}
	if p.PartySize != nil {
		m.PartySize = *p.PartySize
	}
	if p.Notes != nil {
		m.Notes = p.Notes
	}
	m.PerPersonCost = money.PerPersonCost(m.TotalAmount, m.PartySize)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*model.Entry, error) {
	var m model.Entry
	err := row.Scan(&m.ID, &m.OwnerID, &m.Date, &m.Location, &m.TotalAmount, &m.PartySize, &m.PerPersonCost, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
