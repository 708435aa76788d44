// Package store persists facility save states in named slots. SQLite is the
// embedded default; Postgres is reached through the pgx stdlib driver.
package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers "sqlite"

	"github.com/osse101/FactorySim_Go/internal/domain"
	"github.com/osse101/FactorySim_Go/internal/factory"
	"github.com/osse101/FactorySim_Go/internal/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

var (
	ErrSlotNotFound = domain.ErrSaveNotFound
	ErrInvalidSlot  = errors.New("save slot name must not be empty")
)

// SaveInfo describes a slot without decoding its state
type SaveInfo struct {
	Slot    string    `json:"slot"`
	Name    string    `json:"name"`
	Day     int       `json:"day"`
	Balance float64   `json:"balance"`
	SavedAt time.Time `json:"saved_at"`
}

// Store is a save-slot repository
type Store struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

// Open connects to the store and applies pending migrations. An empty dsn
// with the sqlite driver uses DefaultSQLitePath.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	var dialect goose.Dialect
	switch driver {
	case DriverSQLite:
		dialect = goose.DialectSQLite3
		if dsn == "" {
			dsn = DefaultSQLitePath
		}
		if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgOpen, err)
			}
		}
	case DriverPostgres:
		dialect = goose.DialectPostgres
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnsupportedDriver, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgOpen, err)
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		if err := initPragmas(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	} else {
		db.SetMaxOpenConns(MaxPostgresConns)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgPing, err)
	}
	if err := migrate(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgOpened, "driver", driver)
	return &Store{db: db, driver: driver, now: time.Now}, nil
}

func initPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=" + strconv.Itoa(SQLiteBusyTimeoutMS) + ";",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgPragmas, err)
		}
	}
	return nil
}

func migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgMigrate, err)
	}
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgMigrate, err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgMigrate, err)
	}
	log := logger.FromContext(ctx)
	for _, r := range results {
		log.Debug(LogMsgMigrated, "version", r.Source.Version, "duration", r.Duration)
	}
	return nil
}

// Ping checks connectivity
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgPing, err)
	}
	return nil
}

// Close releases the connection pool
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes state into slot, replacing whatever was there
func (s *Store) Save(ctx context.Context, slot string, state factory.State) error {
	slot = strings.TrimSpace(slot)
	if slot == "" {
		return ErrInvalidSlot
	}
	body, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgEncodeState, err)
	}

	const query = `INSERT INTO saves (slot, name, day, balance, state, saved_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (slot) DO UPDATE SET
    name = excluded.name,
    day = excluded.day,
    balance = excluded.balance,
    state = excluded.state,
    saved_at = excluded.saved_at`
	savedAt := s.now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, s.rebind(query),
		slot, state.Name, state.Day, state.Balance, string(body), savedAt); err != nil {
		return fmt.Errorf("%s %q: %w", ErrMsgSave, slot, err)
	}

	logger.FromContext(ctx).Info(LogMsgSaved, "slot", slot, "day", state.Day)
	return nil
}

// Load reads the state in slot
func (s *Store) Load(ctx context.Context, slot string) (factory.State, error) {
	var body string
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT state FROM saves WHERE slot = ?`), slot).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return factory.State{}, fmt.Errorf("%w: %s", ErrSlotNotFound, slot)
	}
	if err != nil {
		return factory.State{}, fmt.Errorf("%s %q: %w", ErrMsgLoad, slot, err)
	}

	var state factory.State
	if err := json.Unmarshal([]byte(body), &state); err != nil {
		return factory.State{}, fmt.Errorf("%s %q: %w", ErrMsgDecodeState, slot, err)
	}
	return state, nil
}

// List returns every slot, most recently saved first
func (s *Store) List(ctx context.Context) ([]SaveInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slot, name, day, balance, saved_at FROM saves ORDER BY saved_at DESC, slot`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgList, err)
	}
	defer rows.Close()

	var out []SaveInfo
	for rows.Next() {
		var (
			info    SaveInfo
			savedAt string
		)
		if err := rows.Scan(&info.Slot, &info.Name, &info.Day, &info.Balance, &savedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgList, err)
		}
		if info.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgList, err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgList, err)
	}
	return out, nil
}

// Delete removes slot
func (s *Store) Delete(ctx context.Context, slot string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM saves WHERE slot = ?`), slot)
	if err != nil {
		return fmt.Errorf("%s %q: %w", ErrMsgDelete, slot, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %q: %w", ErrMsgDelete, slot, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSlotNotFound, slot)
	}

	logger.FromContext(ctx).Info(LogMsgDeleted, "slot", slot)
	return nil
}

// rebind turns ? placeholders into $N for Postgres
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
