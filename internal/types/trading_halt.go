package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
)

// haltNamespace scopes the name-based UUIDs produced by TradingHalt.Key.
var haltNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/rxtech-lab/argo-trading-halt"))

// BaseData is what the host data-feed pipeline consumes: a symbol and the
// time window the data point covers.
type BaseData interface {
	GetSymbol() Symbol
	GetTime() time.Time
	GetEndTime() time.Time
}

// HaltRecord is one parsed line of a halt file.
type HaltRecord struct {
	Symbol Symbol
	Reason HaltReason
	Start  time.Time
	// End is None while the halt is still ongoing.
	End optional.Option[time.Time]
}

// EndOr returns the halt end, or fallback when the halt is ongoing.
func (r HaltRecord) EndOr(fallback time.Time) time.Time {
	return r.End.TakeOr(fallback)
}

// TradingHalt is a single start or end flag of an active-halt segment.
type TradingHalt struct {
	// Symbol is the halted security
	Symbol Symbol `yaml:"symbol" json:"symbol"`
	// Reason is the cause of the halt
	Reason HaltReason `yaml:"reason" json:"reason"`
	// Flag marks the event as a segment start or end
	Flag HaltFlag `yaml:"flag" json:"flag"`
	// Time is when the event is emitted
	Time time.Time `yaml:"time" json:"time"`
	// EndTime equals Time for start flags and carries the segment close for end flags
	EndTime time.Time `yaml:"end_time" json:"end_time"`
}

// GetSymbol implements BaseData.
func (h TradingHalt) GetSymbol() Symbol {
	return h.Symbol
}

// GetTime implements BaseData.
func (h TradingHalt) GetTime() time.Time {
	return h.Time
}

// GetEndTime implements BaseData.
func (h TradingHalt) GetEndTime() time.Time {
	return h.EndTime
}

// Clone returns an independent copy of the event.
func (h TradingHalt) Clone() *TradingHalt {
	clone := h

	return &clone
}

// Key identifies the event by its halt segment and flag, stable across runs.
// EndTime is left out: the End of an ongoing halt moves with the clock.
func (h TradingHalt) Key() string {
	name := fmt.Sprintf("%s|%s|%d|%d|%d",
		h.Symbol.ID,
		h.Symbol.Value,
		int(h.Reason),
		int(h.Flag),
		h.Time.UnixNano(),
	)

	return uuid.NewSHA1(haltNamespace, []byte(name)).String()
}

func (h TradingHalt) String() string {
	return fmt.Sprintf("%s - %s - %s - %s", h.Symbol, h.EndTime.Format(time.DateTime), h.Flag, h.Reason)
}

// HaltCollection holds every event expanded from one halt record. Time and
// EndTime are the original halt start and end, used by the host to window the feed.
type HaltCollection struct {
	Symbol  Symbol        `yaml:"symbol" json:"symbol"`
	Time    time.Time     `yaml:"time" json:"time"`
	EndTime time.Time     `yaml:"end_time" json:"end_time"`
	Data    []TradingHalt `yaml:"data" json:"data"`
}

// NewHaltCollection wraps the events expanded from a halt interval.
func NewHaltCollection(symbol Symbol, start time.Time, end time.Time, data []TradingHalt) *HaltCollection {
	return &HaltCollection{
		Symbol:  symbol,
		Time:    start,
		EndTime: end,
		Data:    data,
	}
}

// GetSymbol implements BaseData.
func (c *HaltCollection) GetSymbol() Symbol {
	return c.Symbol
}

// GetTime implements BaseData.
func (c *HaltCollection) GetTime() time.Time {
	return c.Time
}

// GetEndTime implements BaseData.
func (c *HaltCollection) GetEndTime() time.Time {
	return c.EndTime
}

// Overlaps reports whether the halt interval intersects [start, end].
func (c *HaltCollection) Overlaps(start time.Time, end time.Time) bool {
	return !c.EndTime.Before(start) && !c.Time.After(end)
}
