package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/WLBlock-Polka/Substrate-utxo/pkg/core/ledger"
	_ "github.com/mattn/go-sqlite3"
	"lukechampine.com/uint128"
)

// SQLiteStorage persists the unspent output set and the reward pool in
// SQLite. Writes go through a single connection so each Apply batch runs in
// one SQL transaction; reads use a separate connection.
type SQLiteStorage struct {
	wDB *sql.DB
	rDB *sql.DB
}

// NewSQLiteStorage opens (and if needed creates) the database at conn.
func NewSQLiteStorage(conn string) (*SQLiteStorage, error) {
	if wdb, err := sql.Open("sqlite3", conn); err != nil {
		return nil, err
	} else if _, err = wdb.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, err
	} else if _, err = wdb.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		return nil, err
	} else if _, err = wdb.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return nil, err
	} else if _, err = wdb.Exec(`CREATE TABLE IF NOT EXISTS outputs(
			id TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			owner BLOB NOT NULL,
			created_at TEXT NOT NULL DEFAULT current_timestamp
		)`); err != nil {
		return nil, err
	} else if _, err = wdb.Exec(`CREATE TABLE IF NOT EXISTS reward_pool(
			id INTEGER PRIMARY KEY CHECK (id = 0),
			total BLOB NOT NULL
		)`); err != nil {
		return nil, err
	} else if _, err = wdb.Exec(`INSERT INTO reward_pool(id, total)
			VALUES(0, ?)
			ON CONFLICT(id) DO NOTHING`, valueBytes(ledger.Value{})); err != nil {
		return nil, err
	} else if rdb, err := sql.Open("sqlite3", conn); err != nil {
		return nil, err
	} else if _, err = rdb.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		return nil, err
	} else {
		wdb.SetMaxOpenConns(1)
		return &SQLiteStorage{wDB: wdb, rDB: rdb}, nil
	}
}

func (s *SQLiteStorage) FindOutput(ctx context.Context, id ledger.Hash) (*ledger.TransactionOutput, error) {
	var value, owner []byte
	err := s.rDB.QueryRowContext(ctx, `
        SELECT value, owner FROM outputs WHERE id = ?`,
		id.String(),
	).Scan(&value, &owner)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return outputFromColumns(value, owner)
}

func (s *SQLiteStorage) HasOutput(ctx context.Context, id ledger.Hash) (bool, error) {
	var exists bool
	err := s.rDB.QueryRowContext(ctx, `
        SELECT EXISTS(SELECT 1 FROM outputs WHERE id = ?)`,
		id.String(),
	).Scan(&exists)
	return exists, err
}

func (s *SQLiteStorage) RewardPool(ctx context.Context) (ledger.Value, error) {
	var total []byte
	err := s.rDB.QueryRowContext(ctx, `
        SELECT total FROM reward_pool WHERE id = 0`,
	).Scan(&total)
	if err != nil {
		return ledger.Value{}, err
	}
	return valueFromBytes(total)
}

// Apply runs the whole change set in one SQL transaction.
func (s *SQLiteStorage) Apply(ctx context.Context, changes *ledger.ChangeSet) (err error) {
	tx, err := s.wDB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback() //nolint:errcheck
		}
	}()
	for _, id := range changes.Remove {
		if _, err = tx.ExecContext(ctx, `
            DELETE FROM outputs WHERE id = ?`,
			id.String(),
		); err != nil {
			return err
		}
	}
	for _, rec := range changes.Insert {
		if _, err = tx.ExecContext(ctx, `
            INSERT INTO outputs(id, value, owner)
            VALUES(?, ?, ?)
            ON CONFLICT(id) DO NOTHING`,
			rec.ID.String(),
			valueBytes(rec.Output.Value),
			rec.Output.Owner[:],
		); err != nil {
			return err
		}
	}
	if changes.RewardPool != nil {
		if _, err = tx.ExecContext(ctx, `
            UPDATE reward_pool SET total = ? WHERE id = 0`,
			valueBytes(*changes.RewardPool),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStorage) Close() error {
	s.rDB.Close() //nolint:errcheck
	return s.wDB.Close()
}

func valueBytes(v ledger.Value) []byte {
	buf := make([]byte, ledger.ValueSize)
	v.PutBytes(buf)
	return buf
}

func valueFromBytes(b []byte) (ledger.Value, error) {
	if len(b) != ledger.ValueSize {
		return ledger.Value{}, fmt.Errorf("invalid value column length: %d", len(b))
	}
	return uint128.FromBytes(b), nil
}

func outputFromColumns(value, owner []byte) (*ledger.TransactionOutput, error) {
	v, err := valueFromBytes(value)
	if err != nil {
		return nil, err
	}
	if len(owner) != ledger.PubKeySize {
		return nil, fmt.Errorf("invalid owner column length: %d", len(owner))
	}
	out := &ledger.TransactionOutput{Value: v}
	copy(out.Owner[:], owner)
	return out, nil
}
