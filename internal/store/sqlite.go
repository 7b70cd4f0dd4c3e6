package store

import (
	"context"
	"database/sql"
	"fmt"

	"taskbot/internal/domain"
)

// EnsureSchema creates tables if they don't exist.
func EnsureSchema(db *sql.DB) error {
	schema := `
PRAGMA journal_mode=WAL;
CREATE TABLE IF NOT EXISTS tasks (
  id TEXT PRIMARY KEY,
  seq INTEGER NOT NULL,
  description TEXT NOT NULL,
  assigned_to TEXT NOT NULL,
  due_date TEXT NOT NULL,
  due_time TEXT NOT NULL,
  due_at DATETIME NOT NULL,
  channel_id TEXT NOT NULL,
  completed INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_tasks_channel ON tasks(channel_id, completed, seq);
CREATE TABLE IF NOT EXISTS task_seq (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  next INTEGER NOT NULL
);
INSERT OR IGNORE INTO task_seq (id, next) VALUES (1, 1);
`
	_, err := db.Exec(schema)
	return err
}

type sqliteStore struct{ db *sql.DB }

func NewSQLite(db *sql.DB) Store { return &sqliteStore{db: db} }

func (s *sqliteStore) Create(ctx context.Context, t domain.Task) (string, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var seq int64
	if err = tx.QueryRowContext(ctx, `SELECT next FROM task_seq WHERE id=1`).Scan(&seq); err != nil {
		return "", err
	}
	if _, err = tx.ExecContext(ctx, `UPDATE task_seq SET next=next+1 WHERE id=1`); err != nil {
		return "", err
	}

	id := fmt.Sprintf("#%d", seq)
	_, err = tx.ExecContext(ctx, `
INSERT INTO tasks (id,seq,description,assigned_to,due_date,due_time,due_at,channel_id,completed,created_at)
VALUES (?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
`, id, seq, t.Description, t.AssignedTo, t.DueDate, t.DueTime, t.DueAt, t.ChannelID, t.Completed)
	if err != nil {
		return "", err
	}
	if err = tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *sqliteStore) Save(ctx context.Context, id string, t domain.Task) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Keep the insertion position on overwrite, mint one otherwise.
	var seq int64
	err = tx.QueryRowContext(ctx, `SELECT seq FROM tasks WHERE id=?`, id).Scan(&seq)
	if err == sql.ErrNoRows {
		if err = tx.QueryRowContext(ctx, `SELECT next FROM task_seq WHERE id=1`).Scan(&seq); err != nil {
			return err
		}
		if _, err = tx.ExecContext(ctx, `UPDATE task_seq SET next=next+1 WHERE id=1`); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
INSERT OR REPLACE INTO tasks (id,seq,description,assigned_to,due_date,due_time,due_at,channel_id,completed,created_at)
VALUES (?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
`, id, seq, t.Description, t.AssignedTo, t.DueDate, t.DueTime, t.DueAt, t.ChannelID, t.Completed)
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (s *sqliteStore) Get(ctx context.Context, id string) (domain.Task, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id,description,assigned_to,due_date,due_time,due_at,channel_id,completed,created_at
FROM tasks WHERE id=?`, id)
	return scanTask(row)
}

func (s *sqliteStore) GetAll(ctx context.Context, channelID string) ([]domain.Task, error) {
	return s.list(ctx, `
SELECT id,description,assigned_to,due_date,due_time,due_at,channel_id,completed,created_at
FROM tasks WHERE channel_id=? ORDER BY seq`, channelID)
}

func (s *sqliteStore) GetCompleted(ctx context.Context, channelID string) ([]domain.Task, error) {
	return s.list(ctx, `
SELECT id,description,assigned_to,due_date,due_time,due_at,channel_id,completed,created_at
FROM tasks WHERE channel_id=? AND completed=1 ORDER BY seq`, channelID)
}

func (s *sqliteStore) list(ctx context.Context, query, channelID string) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, channelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqliteStore) MarkDone(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE tasks SET completed=1 WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqliteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.Description, &t.AssignedTo, &t.DueDate, &t.DueTime,
		&t.DueAt, &t.ChannelID, &t.Completed, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return domain.Task{}, ErrNotFound
	}
	if err != nil {
		return domain.Task{}, err
	}
	return t, nil
}
