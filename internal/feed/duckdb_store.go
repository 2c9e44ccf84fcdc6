package feed

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-trading-halt/internal/logger"
	"github.com/rxtech-lab/argo-trading-halt/internal/types"
	"github.com/rxtech-lab/argo-trading-halt/pkg/errors"
	"go.uber.org/zap"
)

const eventsTable = "halt_events"

// DuckDBStore is an EventStore backed by an in-memory DuckDB database.
// Timestamps are stored as Unix nanoseconds and read back in the store location.
type DuckDBStore struct {
	db       *sql.DB
	logger   *logger.Logger
	location *time.Location
	sq       squirrel.StatementBuilderType
}

// NewDuckDBStore opens an in-memory store. Events read back are expressed in loc;
// a nil loc means UTC.
func NewDuckDBStore(loc *time.Location, log *logger.Logger) (*DuckDBStore, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	if loc == nil {
		loc = time.UTC
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		log.Error("Failed to open database", zap.Error(err))

		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open database", err)
	}

	if err := db.Ping(); err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to connect to database", err)
	}

	store := &DuckDBStore{
		db:       db,
		logger:   log,
		location: loc,
		sq:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	if err := store.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return store, nil
}

func (s *DuckDBStore) initialize() error {
	_, err := s.db.Exec(`CREATE SEQUENCE IF NOT EXISTS halt_event_seq`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to create sequence", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS halt_events (
			event_key TEXT PRIMARY KEY,
			seq BIGINT NOT NULL,
			symbol_id TEXT,
			symbol_value TEXT,
			reason INTEGER NOT NULL,
			flag INTEGER NOT NULL,
			event_time BIGINT NOT NULL,
			event_end_time BIGINT NOT NULL
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeWriteFailed, "failed to create halt_events table", err)
	}

	return nil
}

// Insert implements EventStore. An event already stored under the same key has
// its end time refreshed, which moves the End of an ongoing halt forward.
func (s *DuckDBStore) Insert(ctx context.Context, events []types.TradingHalt) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeWriteFailed, "failed to begin transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck

	inserted := 0
	refreshed := 0

	for _, event := range events {
		result, err := s.sq.
			Insert(eventsTable).
			Columns("event_key", "seq", "symbol_id", "symbol_value", "reason", "flag", "event_time", "event_end_time").
			Values(
				event.Key(),
				squirrel.Expr("nextval('halt_event_seq')"),
				string(event.Symbol.ID),
				event.Symbol.Value,
				int(event.Reason),
				int(event.Flag),
				event.Time.UnixNano(),
				event.EndTime.UnixNano(),
			).
			Suffix("ON CONFLICT DO NOTHING").
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return 0, errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to insert halt event %s", event)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeWriteFailed, "failed to read affected rows", err)
		}

		if affected > 0 {
			inserted += int(affected)

			continue
		}

		result, err = s.sq.
			Update(eventsTable).
			Set("event_end_time", event.EndTime.UnixNano()).
			Where(squirrel.Eq{"event_key": event.Key()}).
			Where(squirrel.NotEq{"event_end_time": event.EndTime.UnixNano()}).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return 0, errors.Wrapf(errors.ErrCodeWriteFailed, err, "failed to refresh halt event %s", event)
		}

		affected, err = result.RowsAffected()
		if err != nil {
			return 0, errors.Wrap(errors.ErrCodeWriteFailed, "failed to read affected rows", err)
		}

		refreshed += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(errors.ErrCodeWriteFailed, "failed to commit halt events", err)
	}

	s.logger.Debug("Stored halt events",
		zap.Int("received", len(events)),
		zap.Int("inserted", inserted),
		zap.Int("refreshed", refreshed),
	)

	return inserted, nil
}

// Range implements EventStore.
func (s *DuckDBStore) Range(ctx context.Context, start time.Time, end time.Time, symbols ...types.Symbol) ([]types.TradingHalt, error) {
	query := s.sq.
		Select("symbol_id", "symbol_value", "reason", "flag", "event_time", "event_end_time").
		From(eventsTable).
		Where(squirrel.GtOrEq{"event_time": start.UnixNano()}).
		Where(squirrel.LtOrEq{"event_time": end.UnixNano()}).
		OrderBy("event_time ASC", "seq ASC")

	if len(symbols) > 0 {
		values := make([]string, 0, len(symbols))
		for _, symbol := range symbols {
			values = append(values, symbol.Value)
		}

		query = query.Where(squirrel.Eq{"symbol_value": values})
	}

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query halt events", err)
	}
	defer rows.Close()

	var events []types.TradingHalt

	for rows.Next() {
		var (
			symbolID    sql.NullString
			symbolValue sql.NullString
			reason      int
			flag        int
			eventTime   int64
			endTime     int64
		)

		if err := rows.Scan(&symbolID, &symbolValue, &reason, &flag, &eventTime, &endTime); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan halt event", err)
		}

		events = append(events, types.TradingHalt{
			Symbol: types.Symbol{
				ID:    types.SecurityIdentifier(symbolID.String),
				Value: symbolValue.String,
			},
			Reason:  types.HaltReason(reason),
			Flag:    types.HaltFlag(flag),
			Time:    time.Unix(0, eventTime).In(s.location),
			EndTime: time.Unix(0, endTime).In(s.location),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating halt events", err)
	}

	return events, nil
}

// Count implements EventStore.
func (s *DuckDBStore) Count(ctx context.Context) (int, error) {
	var count int

	err := s.sq.
		Select("COUNT(*)").
		From(eventsTable).
		RunWith(s.db).
		QueryRowContext(ctx).
		Scan(&count)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count halt events", err)
	}

	return count, nil
}

// Close implements EventStore.
func (s *DuckDBStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}
