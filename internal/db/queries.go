package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bgeneto/costwatch/internal/models"
)

// GetSnapshot returns the cached records and record errors for path if a
// snapshot with a matching mtime exists. The boolean reports a cache hit;
// a stale snapshot (different mtime) is a miss.
func (db *DB) GetSnapshot(path string, mtime time.Time) ([]models.Record, []models.RecordError, bool, error) {
	ctx := context.Background()

	var id int64
	var storedMtime int64
	err := db.QueryRowContext(ctx,
		"SELECT id, mtime_ns FROM snapshots WHERE path = ?", path).Scan(&id, &storedMtime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, fmt.Errorf("query snapshot: %w", err)
	}
	if storedMtime != mtime.UnixNano() {
		return nil, nil, false, nil
	}

	records, err := db.snapshotRecords(ctx, id)
	if err != nil {
		return nil, nil, false, err
	}
	recordErrs, err := db.snapshotErrors(ctx, id)
	if err != nil {
		return nil, nil, false, err
	}

	return records, recordErrs, true, nil
}

func (db *DB) snapshotRecords(ctx context.Context, snapshotID int64) ([]models.Record, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT user, model, total_cost, total_tokens
		FROM snapshot_records WHERE snapshot_id = ? ORDER BY position`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("query snapshot records: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]models.Record, 0)
	for rows.Next() {
		var r models.Record
		if err := rows.Scan(&r.User, &r.Model, &r.TotalCost, &r.TotalTokens); err != nil {
			return nil, fmt.Errorf("scan snapshot record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (db *DB) snapshotErrors(ctx context.Context, snapshotID int64) ([]models.RecordError, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT kind, user, field, detail
		FROM snapshot_errors WHERE snapshot_id = ? ORDER BY position`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("query snapshot errors: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var recordErrs []models.RecordError
	for rows.Next() {
		var e models.RecordError
		var kind int
		if err := rows.Scan(&kind, &e.User, &e.Field, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan snapshot error: %w", err)
		}
		e.Kind = models.ErrorKind(kind)
		recordErrs = append(recordErrs, e)
	}
	return recordErrs, rows.Err()
}

// SaveSnapshot replaces any existing snapshot for path with the given
// records and record errors.
func (db *DB) SaveSnapshot(path string, mtime time.Time, records []models.Record, recordErrs []models.RecordError) error {
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// ON DELETE CASCADE clears the old rows
	if _, err := tx.ExecContext(ctx, "DELETE FROM snapshots WHERE path = ?", path); err != nil {
		return fmt.Errorf("delete stale snapshot: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO snapshots (path, mtime_ns) VALUES (?, ?)", path, mtime.UnixNano())
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("snapshot id: %w", err)
	}

	for i, r := range records {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO snapshot_records (snapshot_id, position, user, model, total_cost, total_tokens)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id, i, r.User, r.Model, r.TotalCost, r.TotalTokens); err != nil {
			return fmt.Errorf("insert snapshot record: %w", err)
		}
	}

	for i, e := range recordErrs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO snapshot_errors (snapshot_id, position, kind, user, field, detail)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id, i, int(e.Kind), e.User, e.Field, e.Detail); err != nil {
			return fmt.Errorf("insert snapshot error: %w", err)
		}
	}

	return tx.Commit()
}
