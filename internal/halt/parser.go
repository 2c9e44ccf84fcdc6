package halt

import (
	"strings"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-trading-halt/internal/types"
	"github.com/rxtech-lab/argo-trading-halt/pkg/errors"
)

// DateTimeLayout is the fixed-width timestamp format of halt files (yyyyMMdd HH:mm:ss).
const DateTimeLayout = "20060102 15:04:05"

// FieldCount is the number of comma-separated fields of a halt line:
// security id, ticker, reason code, halt start, halt end.
const FieldCount = 5

// ParseLine parses one halt line. Timestamps are read as wall-clock times in loc.
// An empty end field means the halt is still ongoing.
func ParseLine(line string, loc *time.Location) (types.HaltRecord, error) {
	if loc == nil {
		loc = time.UTC
	}

	fields := strings.Split(strings.TrimRight(line, "\r\n"), ",")
	if len(fields) != FieldCount {
		return types.HaltRecord{}, errors.Newf(errors.ErrCodeInvalidFieldCount,
			"expected %d fields, got %d", FieldCount, len(fields))
	}

	reason, err := types.ParseHaltReason(fields[2])
	if err != nil {
		return types.HaltRecord{}, err
	}

	start, err := parseTimestamp(fields[3], loc)
	if err != nil {
		return types.HaltRecord{}, errors.Wrap(errors.ErrCodeInvalidTimestamp, "invalid halt start", err)
	}

	end := optional.None[time.Time]()

	if strings.TrimSpace(fields[4]) != "" {
		parsed, err := parseTimestamp(fields[4], loc)
		if err != nil {
			return types.HaltRecord{}, errors.Wrap(errors.ErrCodeInvalidTimestamp, "invalid halt end", err)
		}

		end = optional.Some(parsed)
	}

	return types.HaltRecord{
		Symbol: types.NewSymbol(fields[0], fields[1]),
		Reason: reason,
		Start:  start,
		End:    end,
	}, nil
}

func parseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, strings.TrimSpace(raw), loc)
}

// FormatTimestamp renders t in the halt file layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(DateTimeLayout)
}
