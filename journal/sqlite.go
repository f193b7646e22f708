package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/pflow-xyz/go-mintgate/identity"
)

// SQLite is a journal backed by a SQLite database. Use ":memory:" for an
// ephemeral store.
type SQLite struct {
	mu     sync.Mutex
	db     *sql.DB
	stream string
	next   uint64
}

// NewSQLite opens (and if needed creates) a journal database at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}

	j := &SQLite{db: db, stream: newStreamID(), next: 1}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return j, nil
}

func (j *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		seq INTEGER PRIMARY KEY,
		stream TEXT NOT NULL,
		type TEXT NOT NULL,
		actor TEXT NOT NULL,
		owner TEXT NOT NULL,
		token_id INTEGER NOT NULL DEFAULT 0,
		class_id INTEGER NOT NULL DEFAULT 0,
		quantity INTEGER NOT NULL DEFAULT 0,
		class_ids TEXT,
		amounts TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_events_stream ON events(stream, seq);
	`
	if _, err := j.db.Exec(schema); err != nil {
		return err
	}

	// Resume sequence numbering when reopening an existing database.
	row := j.db.QueryRow(`SELECT COALESCE(MAX(seq), 0) FROM events`)
	var max uint64
	if err := row.Scan(&max); err != nil {
		return err
	}
	j.next = max + 1
	return nil
}

// Append stores ev with the next sequence number.
func (j *SQLite) Append(ev *Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	classIDs, err := encodeBatch(ev.ClassIDs)
	if err != nil {
		return err
	}
	amounts, err := encodeBatch(ev.Amounts)
	if err != nil {
		return err
	}

	ev.Seq = j.next
	_, err = j.db.Exec(
		`INSERT INTO events (seq, stream, type, actor, owner, token_id, class_id, quantity, class_ids, amounts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.Seq, j.stream, string(ev.Type), string(ev.Actor), string(ev.Owner),
		ev.TokenID, ev.ClassID, ev.Quantity, classIDs, amounts,
	)
	if err != nil {
		ev.Seq = 0
		return fmt.Errorf("append event: %w", err)
	}
	j.next++
	return nil
}

// Events returns all stored events ordered by sequence number.
func (j *SQLite) Events() ([]Event, error) {
	rows, err := j.db.Query(
		`SELECT seq, type, actor, owner, token_id, class_id, quantity, class_ids, amounts
		 FROM events ORDER BY seq`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		var typ, actor, owner string
		var classIDs, amounts sql.NullString
		err := rows.Scan(&ev.Seq, &typ, &actor, &owner,
			&ev.TokenID, &ev.ClassID, &ev.Quantity, &classIDs, &amounts)
		if err != nil {
			return nil, err
		}
		ev.Type = Type(typ)
		ev.Actor = identity.Address(actor)
		ev.Owner = identity.Address(owner)
		if ev.ClassIDs, err = decodeBatch(classIDs); err != nil {
			return nil, err
		}
		if ev.Amounts, err = decodeBatch(amounts); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Stream returns the journal instance identifier.
func (j *SQLite) Stream() string { return j.stream }

// Close closes the database connection.
func (j *SQLite) Close() error { return j.db.Close() }

var _ Journal = (*SQLite)(nil)

func encodeBatch(values []uint64) (sql.NullString, error) {
	if len(values) == 0 {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode batch payload: %w", err)
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

func decodeBatch(raw sql.NullString) ([]uint64, error) {
	if !raw.Valid {
		return nil, nil
	}
	var values []uint64
	if err := json.Unmarshal([]byte(raw.String), &values); err != nil {
		return nil, fmt.Errorf("decode batch payload: %w", err)
	}
	return values, nil
}
