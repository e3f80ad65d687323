// Package archive keeps transfer reports in a SQLite database so finished
// jobs can be listed and inspected later.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/caio-sobreiro/dicomsend/storescu"
)

// ErrJobNotFound is returned when no job has the requested ID
var ErrJobNotFound = errors.New("archive: job not found")

// Job is the stored summary of one transfer job
type Job struct {
	ID        string
	Peer      string
	CreatedAt time.Time
	Summary   storescu.Summary
}

// Store is a report archive backed by SQLite
type Store struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Open opens or creates the archive at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	s := &Store{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS jobs (
		id         TEXT PRIMARY KEY,
		peer       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		total      INTEGER NOT NULL,
		sent       INTEGER NOT NULL,
		not_sent   INTEGER NOT NULL,
		success    INTEGER NOT NULL,
		warning    INTEGER NOT NULL,
		failed     INTEGER NOT NULL,
		refused    INTEGER NOT NULL,
		pending    INTEGER NOT NULL,
		unknown    INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS objects (
		job_id               TEXT NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		seq                  INTEGER NOT NULL,
		source               TEXT NOT NULL,
		sop_instance_uid     TEXT NOT NULL,
		sop_class_uid        TEXT NOT NULL,
		sop_class_name       TEXT NOT NULL,
		transfer_syntax_uid  TEXT NOT NULL,
		transfer_syntax_name TEXT NOT NULL,
		session              INTEGER NOT NULL DEFAULT 0,
		context_id           INTEGER NOT NULL DEFAULT 0,
		network_syntax_uid   TEXT NOT NULL DEFAULT '',
		network_syntax_name  TEXT NOT NULL DEFAULT '',
		size                 INTEGER NOT NULL DEFAULT 0,
		sent                 INTEGER NOT NULL,
		status               INTEGER NOT NULL,
		status_text          TEXT NOT NULL,
		PRIMARY KEY (job_id, seq)
	);
	CREATE INDEX IF NOT EXISTS idx_objects_instance ON objects(sop_instance_uid);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save stores report and returns the new job ID. IDs sort by creation time.
func (s *Store) Save(ctx context.Context, report *storescu.Report) (string, error) {
	id := s.newID()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	sum := report.Summary
	_, err = tx.ExecContext(ctx,
		`INSERT INTO jobs (id, peer, created_at, total, sent, not_sent, success, warning, failed, refused, pending, unknown)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, report.Peer, report.CreatedAt.UTC().Format(time.RFC3339Nano),
		sum.Total, sum.Sent, sum.NotSent, sum.Success, sum.Warning, sum.Failed, sum.Refused, sum.Pending, sum.Unknown)
	if err != nil {
		return "", fmt.Errorf("insert job: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO objects (job_id, seq, source, sop_instance_uid, sop_class_uid, sop_class_name,
			transfer_syntax_uid, transfer_syntax_name, session, context_id,
			network_syntax_uid, network_syntax_name, size, sent, status, status_text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, r := range report.Records {
		_, err := stmt.ExecContext(ctx,
			id, r.Seq, r.Source, r.SOPInstanceUID, r.SOPClassUID, r.SOPClassName,
			r.TransferSyntaxUID, r.TransferSyntaxName, r.Session, r.ContextID,
			r.NetworkTransferSyntaxUID, r.NetworkTransferSyntaxName, r.Size, r.Sent, int(r.Status), r.StatusText)
		if err != nil {
			return "", fmt.Errorf("insert object %d: %w", r.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (Job, error) {
	var (
		job     Job
		created string
		sum     = &job.Summary
	)
	err := row.Scan(&job.ID, &job.Peer, &created,
		&sum.Total, &sum.Sent, &sum.NotSent, &sum.Success, &sum.Warning, &sum.Failed, &sum.Refused, &sum.Pending, &sum.Unknown)
	if err != nil {
		return job, err
	}
	job.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
	return job, err
}

const jobColumns = `id, peer, created_at, total, sent, not_sent, success, warning, failed, refused, pending, unknown`

// List returns the most recent jobs first. A limit of zero or less returns
// every job.
func (s *Store) List(ctx context.Context, limit int) ([]Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Job returns the summary of one job
func (s *Store) Job(ctx context.Context, id string) (Job, error) {
	job, err := scanJob(s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return job, fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return job, err
}

// Get rebuilds the full report of a job
func (s *Store) Get(ctx context.Context, id string) (*storescu.Report, error) {
	job, err := s.Job(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, source, sop_instance_uid, sop_class_uid, sop_class_name,
			transfer_syntax_uid, transfer_syntax_name, session, context_id,
			network_syntax_uid, network_syntax_name, size, sent, status, status_text
		 FROM objects WHERE job_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	report := &storescu.Report{
		Peer:      job.Peer,
		CreatedAt: job.CreatedAt,
		Summary:   job.Summary,
		Records:   []storescu.ReportRecord{},
	}
	for rows.Next() {
		var (
			r      storescu.ReportRecord
			status int
		)
		err := rows.Scan(&r.Seq, &r.Source, &r.SOPInstanceUID, &r.SOPClassUID, &r.SOPClassName,
			&r.TransferSyntaxUID, &r.TransferSyntaxName, &r.Session, &r.ContextID,
			&r.NetworkTransferSyntaxUID, &r.NetworkTransferSyntaxName, &r.Size, &r.Sent, &status, &r.StatusText)
		if err != nil {
			return nil, err
		}
		r.Status = uint16(status)
		report.Records = append(report.Records, r)
	}
	return report, rows.Err()
}

// Delete removes a job and its objects
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return nil
}

// FindInstance returns the IDs of jobs that handled the SOP instance, most
// recent first.
func (s *Store) FindInstance(ctx context.Context, sopInstanceUID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT job_id FROM objects WHERE sop_instance_uid = ? ORDER BY job_id DESC`, sopInstanceUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
