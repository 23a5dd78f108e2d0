package library

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// Storage keys for the persisted session.
const (
	keyToken = "token"
	keyEmail = "email"
	keyRoles = "roles"
)

// Snapshot kinds.
const (
	SnapshotCatalog = "catalog"
	snapshotLoans   = "loans/"
)

// LoansSnapshot is the snapshot kind for one user's borrowing history.
func LoansSnapshot(email string) string { return snapshotLoans + NormalizeEmail(email) }

// Database is the client's local storage: the persisted session plus the
// last successfully fetched collections.
type Database struct {
	db *sql.DB

	setItemStmt      *sql.Stmt
	saveSnapshotStmt *sql.Stmt
}

// NewDatabase opens (or creates) the SQLite database at dbPath, applies schema
// migrations, and prepares common statements.
func NewDatabase(dbPath string) (*Database, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, errors.Wrap(err, "create db dir")
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	database := &Database{db: db}
	if err := database.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return database, nil
}

// Close releases prepared statements and closes the DB.
func (d *Database) Close() error {
	if d.setItemStmt != nil {
		d.setItemStmt.Close()
	}
	if d.saveSnapshotStmt != nil {
		d.saveSnapshotStmt.Close()
	}
	return d.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	// WAL keeps a concurrent `browse` and `books` from blocking each other.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return errors.Wrap(err, "enable WAL")
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS storage (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS snapshots (
            kind TEXT PRIMARY KEY,
            payload TEXT NOT NULL,
            fetched_at INTEGER NOT NULL
        );`,
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return errors.Wrap(err, "apply migration")
		}
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return errors.Wrap(err, "record schema version")
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (d *Database) prepareStatements() error {
	var err error
	if d.setItemStmt, err = d.db.Prepare(`INSERT INTO storage(key,value) VALUES(?,?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value`); err != nil {
		return err
	}
	if d.saveSnapshotStmt, err = d.db.Prepare(`INSERT INTO snapshots(kind,payload,fetched_at) VALUES(?,?,?)
            ON CONFLICT(kind) DO UPDATE SET payload=excluded.payload, fetched_at=excluded.fetched_at`); err != nil {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Key/value storage
// ---------------------------------------------------------------------------

func (d *Database) SetItem(key, value string) error {
	_, err := d.setItemStmt.Exec(key, value)
	return errors.Wrapf(err, "set %s", key)
}

// GetItem returns "" when key is absent.
func (d *Database) GetItem(key string) (string, error) {
	var v string
	err := d.db.QueryRow(`SELECT value FROM storage WHERE key=?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrapf(err, "get %s", key)
	}
	return v, nil
}

func (d *Database) RemoveItem(key string) error {
	_, err := d.db.Exec(`DELETE FROM storage WHERE key=?`, key)
	return errors.Wrapf(err, "remove %s", key)
}

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

// LoadSession rebuilds the session saved by the last login. A missing token
// yields a guest session.
func (d *Database) LoadSession() (Session, error) {
	token, err := d.GetItem(keyToken)
	if err != nil {
		return Session{}, err
	}
	if token == "" {
		return GuestSession(), nil
	}
	email, err := d.GetItem(keyEmail)
	if err != nil {
		return Session{}, err
	}
	rawRoles, err := d.GetItem(keyRoles)
	if err != nil {
		return Session{}, err
	}
	var roles []string
	if rawRoles != "" {
		if err := json.Unmarshal([]byte(rawRoles), &roles); err != nil {
			return Session{}, errors.Wrap(err, "decode stored roles")
		}
	}
	return NewSession(token, email, roles), nil
}

// SaveSession persists s in one transaction.
func (d *Database) SaveSession(s Session) error {
	roles, err := json.Marshal(s.Roles())
	if err != nil {
		return err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt := tx.Stmt(d.setItemStmt)
	for key, value := range map[string]string{keyToken: s.Token, keyEmail: s.Email, keyRoles: string(roles)} {
		if _, err := stmt.Exec(key, value); err != nil {
			return errors.Wrapf(err, "save %s", key)
		}
	}
	return tx.Commit()
}

// ClearSession forgets the credentials and the user's cached loans.
func (d *Database) ClearSession() error {
	email, err := d.GetItem(keyEmail)
	if err != nil {
		return err
	}

	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM storage WHERE key IN (?,?,?)`, keyToken, keyEmail, keyRoles); err != nil {
		return errors.Wrap(err, "clear session")
	}
	if email != "" {
		if _, err := tx.Exec(`DELETE FROM snapshots WHERE kind=?`, LoansSnapshot(email)); err != nil {
			return errors.Wrap(err, "clear loans snapshot")
		}
	}
	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Snapshots
// ---------------------------------------------------------------------------

// SaveSnapshot stores v as JSON under kind, replacing any previous snapshot.
func (d *Database) SaveSnapshot(kind string, v any, fetchedAt time.Time) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s snapshot", kind)
	}
	_, err = d.saveSnapshotStmt.Exec(kind, string(payload), fetchedAt.UnixMilli())
	return errors.Wrapf(err, "save %s snapshot", kind)
}

// LoadSnapshot decodes the snapshot stored under kind into dst and returns
// when it was fetched. ErrNotFound means nothing was ever saved.
func (d *Database) LoadSnapshot(kind string, dst any) (time.Time, error) {
	var (
		payload string
		millis  int64
	)
	err := d.db.QueryRow(`SELECT payload, fetched_at FROM snapshots WHERE kind=?`, kind).Scan(&payload, &millis)
	if err == sql.ErrNoRows {
		return time.Time{}, errors.Wrapf(ErrNotFound, "%s snapshot", kind)
	}
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "load %s snapshot", kind)
	}
	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		return time.Time{}, errors.Wrapf(err, "decode %s snapshot", kind)
	}
	return time.UnixMilli(millis), nil
}
