package store

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/mailthread/internal/model"
	"github.com/rcliao/mailthread/internal/threading"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS messages (
		seq          INTEGER PRIMARY KEY AUTOINCREMENT,
		id           TEXT NOT NULL UNIQUE,
		mailbox      TEXT NOT NULL,
		message_id   TEXT NOT NULL,
		subject      TEXT NOT NULL DEFAULT '',
		norm_subject TEXT NOT NULL DEFAULT '',
		from_addr    TEXT,
		date         TEXT,
		imported_at  TEXT NOT NULL,
		deleted_at   TEXT,
		source       TEXT,
		batch        TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_messages_mailbox_mid ON messages(mailbox, message_id);
	CREATE INDEX IF NOT EXISTS idx_messages_norm ON messages(mailbox, norm_subject);
	CREATE INDEX IF NOT EXISTS idx_messages_deleted ON messages(deleted_at);

	CREATE TABLE IF NOT EXISTS message_refs (
		message_id TEXT NOT NULL REFERENCES messages(id) ON DELETE CASCADE,
		pos        INTEGER NOT NULL,
		ref        TEXT NOT NULL,
		PRIMARY KEY (message_id, pos)
	);
	CREATE INDEX IF NOT EXISTS idx_refs_ref ON message_refs(ref);
	`
	_, err := s.db.Exec(schema)
	return err
}

const messageColumns = `m.id, m.seq, m.mailbox, m.message_id, m.subject, m.from_addr,
	m.date, m.imported_at, m.deleted_at, m.source, m.batch`

func mailboxOrDefault(mailbox string) string {
	if mailbox == "" {
		return model.DefaultMailbox
	}
	return mailbox
}

func (s *SQLiteStore) Put(ctx context.Context, p PutParams) (*model.Message, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	m, err := s.insert(ctx, tx, p, "")
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return m, nil
}

// insert writes one message and its reference rows inside tx.
func (s *SQLiteStore) insert(ctx context.Context, tx *sql.Tx, p PutParams, batch string) (*model.Message, error) {
	if p.MessageID == "" {
		return nil, fmt.Errorf("empty message id")
	}
	now := time.Now().UTC()
	m := &model.Message{
		ID:         s.newID(),
		Mailbox:    mailboxOrDefault(p.Mailbox),
		MessageID:  p.MessageID,
		References: p.References,
		Subject:    p.Subject,
		From:       p.From,
		ImportedAt: now,
		Source:     p.Source,
		Batch:      batch,
	}

	var date *string
	if p.Date != nil {
		d := p.Date.UTC()
		m.Date = &d
		v := d.Format(time.RFC3339Nano)
		date = &v
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO messages (id, mailbox, message_id, subject, norm_subject, from_addr, date, imported_at, source, batch)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Mailbox, m.MessageID, m.Subject, threading.NormalizeSubject(m.Subject),
		nullable(m.From), date, now.Format(time.RFC3339Nano), nullable(m.Source), nullable(batch))
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	if m.Seq, err = res.LastInsertId(); err != nil {
		return nil, err
	}

	for i, ref := range p.References {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO message_refs (message_id, pos, ref) VALUES (?, ?, ?)`,
			m.ID, i, ref)
		if err != nil {
			return nil, fmt.Errorf("insert reference: %w", err)
		}
	}
	return m, nil
}

func (s *SQLiteStore) Get(ctx context.Context, p GetParams) ([]model.Message, error) {
	query := `SELECT ` + messageColumns + ` FROM messages m
		WHERE m.mailbox = ? AND m.message_id = ? AND m.deleted_at IS NULL
		ORDER BY m.seq DESC`
	if !p.History {
		query += ` LIMIT 1`
	}

	msgs, err := s.query(ctx, query, mailboxOrDefault(p.Mailbox), p.MessageID)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, mailboxOrDefault(p.Mailbox), p.MessageID)
	}
	return msgs, nil
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.Message, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	where := []string{"m.deleted_at IS NULL"}
	args := []interface{}{}
	if p.Mailbox != "" {
		where = append(where, "m.mailbox = ?")
		args = append(args, p.Mailbox)
	}
	args = append(args, limit, p.Offset)

	query := fmt.Sprintf(`SELECT %s FROM messages m WHERE %s ORDER BY m.seq LIMIT ? OFFSET ?`,
		messageColumns, strings.Join(where, " AND "))
	return s.query(ctx, query, args...)
}

// Messages returns every active message of a mailbox in import order.
func (s *SQLiteStore) Messages(ctx context.Context, mailbox string) ([]model.Message, error) {
	return s.query(ctx, `SELECT `+messageColumns+` FROM messages m
		WHERE m.mailbox = ? AND m.deleted_at IS NULL ORDER BY m.seq`, mailboxOrDefault(mailbox))
}

func (s *SQLiteStore) Rm(ctx context.Context, p RmParams) error {
	mailbox := mailboxOrDefault(p.Mailbox)

	var res sql.Result
	var err error
	if p.Hard {
		res, err = s.db.ExecContext(ctx,
			`DELETE FROM messages WHERE mailbox = ? AND message_id = ?`, mailbox, p.MessageID)
	} else {
		now := time.Now().UTC().Format(time.RFC3339Nano)
		res, err = s.db.ExecContext(ctx,
			`UPDATE messages SET deleted_at = ? WHERE mailbox = ? AND message_id = ? AND deleted_at IS NULL`,
			now, mailbox, p.MessageID)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, mailbox, p.MessageID)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// query runs a message select and fills in reference lists.
func (s *SQLiteStore) query(ctx context.Context, query string, args ...interface{}) ([]model.Message, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []model.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.loadRefs(ctx, msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMessage(row scanner) (model.Message, error) {
	var m model.Message
	var from, date, deletedAt, source, batch sql.NullString
	var importedAt string

	err := row.Scan(
		&m.ID, &m.Seq, &m.Mailbox, &m.MessageID, &m.Subject, &from,
		&date, &importedAt, &deletedAt, &source, &batch,
	)
	if err != nil {
		return m, err
	}

	m.ImportedAt, _ = time.Parse(time.RFC3339Nano, importedAt)
	m.From = from.String
	m.Source = source.String
	m.Batch = batch.String
	if date.Valid {
		t, _ := time.Parse(time.RFC3339Nano, date.String)
		m.Date = &t
	}
	if deletedAt.Valid {
		t, _ := time.Parse(time.RFC3339Nano, deletedAt.String)
		m.DeletedAt = &t
	}
	return m, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
