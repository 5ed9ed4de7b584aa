package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"cefr-training-go/internal/types"
)

const defaultDriver = "sqlite"

// candidatesQuery selects every candidate with a voice note and an assessed English level.
// No ORDER BY: callers see rows in store order.
const candidatesQuery = `
SELECT c.Id, c.FullName, c.VoiceNotePath, c.EnglishLevel, c.MatchedOffers
FROM Candidates c
WHERE c.VoiceNotePath IS NOT NULL AND c.VoiceNotePath != ''
AND c.EnglishLevel IS NOT NULL AND c.EnglishLevel != 'Pending'
`

// StoreError reports a failed connection or query against the candidate store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("candidate store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Collector reads assessed candidates from a SQLite recruitment database.
type Collector struct {
	driver string
	dsn    string
}

// Option customizes a Collector.
type Option func(*Collector)

// WithDriver swaps the database/sql driver name; the dsn is then passed through untouched.
func WithDriver(driver string) Option {
	return func(c *Collector) {
		c.driver = driver
	}
}

// NewCollector binds a collector to dbPath. Plain file paths are opened read-only.
func NewCollector(dbPath string, opts ...Option) *Collector {
	c := &Collector{driver: defaultDriver, dsn: dbPath}
	for _, opt := range opts {
		opt(c)
	}
	if c.driver == defaultDriver {
		c.dsn = sqliteDSN(dbPath)
	}
	return c
}

// Collect opens a connection, runs the candidate query and returns every matching row.
// The connection is closed before Collect returns. Either all rows are returned or a *StoreError.
func (c *Collector) Collect(ctx context.Context) (records []types.CandidateRecord, err error) {
	db, err := sql.Open(c.driver, c.dsn)
	if err != nil {
		return nil, &StoreError{Op: "open", Err: err}
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			records, err = nil, &StoreError{Op: "close", Err: closeErr}
		}
	}()
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return nil, &StoreError{Op: "connect", Err: err}
	}

	rows, err := db.QueryContext(ctx, candidatesQuery)
	if err != nil {
		return nil, &StoreError{Op: "query candidates", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		rec, scanErr := scanCandidate(rows)
		if scanErr != nil {
			return nil, &StoreError{Op: "scan candidate", Err: scanErr}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "iterate candidates", Err: err}
	}
	return records, nil
}

func scanCandidate(rows *sql.Rows) (types.CandidateRecord, error) {
	var (
		rec           types.CandidateRecord
		fullName      sql.NullString
		matchedOffers sql.NullString
	)
	if err := rows.Scan(&rec.ID, &fullName, &rec.VoiceNotePath, &rec.EnglishLevel, &matchedOffers); err != nil {
		return types.CandidateRecord{}, err
	}
	rec.FullName = fullName.String
	rec.MatchedOffers = matchedOffers.String
	return rec, nil
}

// IsStoreError reports whether err came from the candidate store.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

var uriEscaper = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23")

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	return "file:" + uriEscaper.Replace(path) + "?mode=ro&_pragma=busy_timeout(5000)"
}
