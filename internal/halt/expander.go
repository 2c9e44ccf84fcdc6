// Package halt turns halt records into the day-segmented start/end flag events
// consumed by algorithms.
//
// A halt spanning several calendar days is re-asserted every day so that an
// algorithm starting mid-halt still receives a start flag. For a halt from
// day 1 10:00 to day 2 15:00 four events are emitted:
//
//	day 1 10:00 Start (end 10:00)
//	day 1 10:00 End   (end 20:00, post-market close of day 1)
//	day 2 04:00 Start (end 04:00, pre-market open of day 2)
//	day 2 04:00 End   (end 15:00, the real halt end)
package halt

import (
	"time"

	"github.com/rxtech-lab/argo-trading-halt/internal/types"
	"github.com/rxtech-lab/argo-trading-halt/pkg/errors"
)

// Session holds the wall-clock offsets from local midnight at which the
// extended trading day opens and closes.
type Session struct {
	PreMarketStart time.Duration `yaml:"pre_market_start" json:"pre_market_start"`
	PostMarketEnd  time.Duration `yaml:"post_market_end" json:"post_market_end"`
}

// DefaultSession is the US equities extended session, 04:00 to 20:00.
var DefaultSession = Session{
	PreMarketStart: 4 * time.Hour,
	PostMarketEnd:  20 * time.Hour,
}

// Validate checks that both offsets fall inside the day and the session is not empty.
func (s Session) Validate() error {
	if s.PreMarketStart < 0 || s.PreMarketStart >= 24*time.Hour {
		return errors.Newf(errors.ErrCodeInvalidSession, "pre-market start %s is outside the day", s.PreMarketStart)
	}

	if s.PostMarketEnd <= 0 || s.PostMarketEnd > 24*time.Hour {
		return errors.Newf(errors.ErrCodeInvalidSession, "post-market end %s is outside the day", s.PostMarketEnd)
	}

	if s.PostMarketEnd <= s.PreMarketStart {
		return errors.Newf(errors.ErrCodeInvalidSession,
			"post-market end %s must be after pre-market start %s", s.PostMarketEnd, s.PreMarketStart)
	}

	return nil
}

// at returns the wall-clock offset on t's calendar day, in t's location.
func at(t time.Time, offset time.Duration) time.Time {
	year, month, day := t.Date()
	hours := int(offset / time.Hour)
	minutes := int(offset % time.Hour / time.Minute)
	seconds := int(offset % time.Minute / time.Second)

	return time.Date(year, month, day, hours, minutes, seconds, 0, t.Location())
}

func sameDate(a time.Time, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

// nextSessionStart returns the pre-market open of the calendar day after t.
func (s Session) nextSessionStart(t time.Time) time.Time {
	year, month, day := t.Date()

	return at(time.Date(year, month, day+1, 0, 0, 0, 0, t.Location()), s.PreMarketStart)
}

// Expand produces the ordered start/end events covering [start, end).
// Calendar days are taken in start's location; end is converted into it.
// A zero-length interval yields no events. An end before start is rejected.
func Expand(symbol types.Symbol, reason types.HaltReason, start time.Time, end time.Time, session Session) ([]types.TradingHalt, error) {
	if end.Before(start) {
		return nil, errors.Newf(errors.ErrCodeInvalidInterval,
			"halt end %s precedes halt start %s", end.Format(time.DateTime), start.Format(time.DateTime))
	}

	end = end.In(start.Location())

	var events []types.TradingHalt

	for cursor := start; cursor.Before(end); cursor = session.nextSessionStart(cursor) {
		// The last segment closes at the halt end, including halts that resolve
		// overnight before the next session opens. Do not cap it at the post-market
		// close: the last End must always carry the halt end.
		closing := at(cursor, session.PostMarketEnd)
		if sameDate(cursor, end) || !session.nextSessionStart(cursor).Before(end) {
			closing = end
		}

		// A halt starting after the post-market close still gets a non-negative segment,
		// so no End precedes its Start.
		if closing.Before(cursor) {
			closing = cursor
		}

		events = append(events,
			types.TradingHalt{
				Symbol:  symbol,
				Reason:  reason,
				Flag:    types.HaltFlagStart,
				Time:    cursor,
				EndTime: cursor,
			},
			types.TradingHalt{
				Symbol:  symbol,
				Reason:  reason,
				Flag:    types.HaltFlagEnd,
				Time:    cursor,
				EndTime: closing,
			},
		)
	}

	return events, nil
}

// ExpandRecord expands a parsed record, substituting now for an ongoing halt's end.
func ExpandRecord(record types.HaltRecord, now time.Time, session Session) ([]types.TradingHalt, error) {
	return Expand(record.Symbol, record.Reason, record.Start, record.EndOr(now), session)
}
