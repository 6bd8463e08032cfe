package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hireloop/hireloop/pkg/models"
)

// EnqueueTask inserts a task into the queue table and returns the new ID
func (r *SQLiteRepo) EnqueueTask(ctx context.Context, t *models.Task) (int64, error) {
	if t == nil {
		return 0, fmt.Errorf("task is nil")
	}
	if t.MaxAttempts == 0 {
		t.MaxAttempts = 5
	}
	if t.ScheduledAt.IsZero() {
		t.ScheduledAt = time.Now()
	}

	payload := string(t.Payload)
	ts := now()
	q := `INSERT INTO tasks(type, payload, status, attempts, max_attempts, priority, scheduled_at, created, updated) VALUES(?,?,?,?,?,?,?,?,?)`
	res, err := r.conn.Exec(ctx, q, t.Type, payload, "queued", t.Attempts, t.MaxAttempts, t.Priority, t.ScheduledAt.UTC().Unix(), ts, ts)
	if err != nil {
		return 0, fmt.Errorf("enqueue failed: %w", err)
	}

	return res.LastInsertId()
}

// FetchNextTask fetches the next available task respecting priority and schedule
func (r *SQLiteRepo) FetchNextTask(ctx context.Context) (*models.Task, error) {
	q := `SELECT id, type, payload, status, attempts, max_attempts, priority, scheduled_at, next_try_at, last_error, created, updated FROM tasks WHERE (status = 'queued' OR status = 'retry') AND (next_try_at IS NULL OR next_try_at <= ?) AND scheduled_at <= ? ORDER BY priority ASC, scheduled_at ASC LIMIT 1`
	nowUnix := time.Now().UTC().Unix()
	row := r.conn.QueryRow(ctx, q, nowUnix, nowUnix)
	var (
		id          int64
		typ         string
		payload     sql.NullString
		status      string
		attempts    int
		maxAttempts int
		priority    int
		scheduledAt int64
		nextTry     sql.NullInt64
		lastError   sql.NullString
		created     int64
		updated     int64
	)
	if err := row.Scan(&id, &typ, &payload, &status, &attempts, &maxAttempts, &priority, &scheduledAt, &nextTry, &lastError, &created, &updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("fetch next task: %w", err)
	}

	t := &models.Task{
		ID:          id,
		Type:        typ,
		Status:      status,
		Attempts:    attempts,
		MaxAttempts: maxAttempts,
		Priority:    priority,
		ScheduledAt: time.Unix(scheduledAt, 0),
		Created:     time.Unix(created, 0),
		Updated:     time.Unix(updated, 0),
	}
	if payload.Valid {
		t.Payload = json.RawMessage(payload.String)
	}
	if nextTry.Valid {
		v := time.Unix(nextTry.Int64, 0)
		t.NextTryAt = &v
	}
	if lastError.Valid {
		t.LastError = lastError.String
	}

	return t, nil
}

// UpdateTask updates attempts, status, next_try_at, last_error
func (r *SQLiteRepo) UpdateTask(ctx context.Context, t *models.Task) error {
	var nextTry any
	if t.NextTryAt != nil {
		nextTry = t.NextTryAt.Unix()
	} else {
		nextTry = nil
	}
	q := `UPDATE tasks SET status = ?, attempts = ?, next_try_at = ?, last_error = ?, updated = ? WHERE id = ?`
	_, err := r.conn.Exec(ctx, q, t.Status, t.Attempts, nextTry, t.LastError, time.Now().UTC().Unix(), t.ID)

	return err
}

// MoveTaskToDeadLetter moves a task to dead_letter_tasks and deletes the original
func (r *SQLiteRepo) MoveTaskToDeadLetter(ctx context.Context, t *models.Task) error {
	tx, err := r.conn.GetConn().BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	payload := string(t.Payload)
	insert := `INSERT INTO dead_letter_tasks(task_id, type, payload, attempts, last_error, failed_at) VALUES(?,?,?,?,?,?)`
	if _, err := tx.ExecContext(ctx, insert, t.ID, t.Type, payload, t.Attempts, t.LastError, time.Now().UTC().Unix()); err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, t.ID); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
