package types

import (
	"strconv"
	"strings"

	"github.com/rxtech-lab/argo-trading-halt/pkg/errors"
)

// HaltReason is the cause of a trading halt. The numeric values are the codes
// stored in the halt files and must not be reordered.
type HaltReason int

const (
	// HaltReasonCorporateAction is a halt for a corporate action
	HaltReasonCorporateAction HaltReason = iota
	// HaltReasonLULDPause is a limit up-limit down volatility pause
	HaltReasonLULDPause
	// HaltReasonMergerEffective is a halt while a merger becomes effective
	HaltReasonMergerEffective
	// HaltReasonNewSecurityOffering is a halt for a new security offering
	HaltReasonNewSecurityOffering
	// HaltReasonNewsReleased is a halt after news was released
	HaltReasonNewsReleased
	// HaltReasonNewsDissemination is a halt while news is disseminated
	HaltReasonNewsDissemination
	// HaltReasonNewsPending is a halt while news is pending
	HaltReasonNewsPending
	// HaltReasonRegulatoryConcern is a halt for a regulatory concern
	HaltReasonRegulatoryConcern
)

var haltReasonNames = [...]string{
	"CorporateAction",
	"LULDPause",
	"MergerEffective",
	"NewSecurityOffering",
	"NewsReleased",
	"NewsDissemination",
	"NewsPending",
	"RegulatoryConcern",
}

// AllHaltReasons lists every defined reason in code order.
var AllHaltReasons = []HaltReason{
	HaltReasonCorporateAction,
	HaltReasonLULDPause,
	HaltReasonMergerEffective,
	HaltReasonNewSecurityOffering,
	HaltReasonNewsReleased,
	HaltReasonNewsDissemination,
	HaltReasonNewsPending,
	HaltReasonRegulatoryConcern,
}

// IsValid reports whether r is one of the defined reasons.
func (r HaltReason) IsValid() bool {
	return r >= HaltReasonCorporateAction && r <= HaltReasonRegulatoryConcern
}

func (r HaltReason) String() string {
	if !r.IsValid() {
		return "HaltReason(" + strconv.Itoa(int(r)) + ")"
	}

	return haltReasonNames[r]
}

// ParseHaltReason accepts either the numeric code ("1") or the name
// ("LULDPause", case-insensitive).
func ParseHaltReason(raw string) (HaltReason, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, errors.New(errors.ErrCodeInvalidReason, "halt reason is empty")
	}

	if code, err := strconv.Atoi(value); err == nil {
		reason := HaltReason(code)
		if !reason.IsValid() {
			return 0, errors.Newf(errors.ErrCodeInvalidReason, "unknown halt reason code %d", code)
		}

		return reason, nil
	}

	for i, name := range haltReasonNames {
		if strings.EqualFold(name, value) {
			return HaltReason(i), nil
		}
	}

	return 0, errors.Newf(errors.ErrCodeInvalidReason, "unknown halt reason %q", value)
}

// Code returns the numeric code written in halt files.
func (r HaltReason) Code() string {
	return strconv.Itoa(int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r HaltReason) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, errors.Newf(errors.ErrCodeInvalidReason, "unknown halt reason code %d", int(r))
	}

	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *HaltReason) UnmarshalText(text []byte) error {
	reason, err := ParseHaltReason(string(text))
	if err != nil {
		return err
	}

	*r = reason

	return nil
}

// HaltFlag marks whether an event opens or closes an active-halt segment.
type HaltFlag int

const (
	// HaltFlagStart signals that the halt is active from the event time
	HaltFlagStart HaltFlag = iota
	// HaltFlagEnd carries the closing boundary of a halt segment
	HaltFlagEnd
)

func (f HaltFlag) String() string {
	switch f {
	case HaltFlagStart:
		return "Start"
	case HaltFlagEnd:
		return "End"
	default:
		return "HaltFlag(" + strconv.Itoa(int(f)) + ")"
	}
}

// ParseHaltFlag accepts "0"/"1" or "Start"/"End" in any case.
func ParseHaltFlag(raw string) (HaltFlag, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "0", "start":
		return HaltFlagStart, nil
	case "1", "end":
		return HaltFlagEnd, nil
	default:
		return 0, errors.Newf(errors.ErrCodeInvalidFlag, "unknown halt flag %q", raw)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f HaltFlag) MarshalText() ([]byte, error) {
	if f != HaltFlagStart && f != HaltFlagEnd {
		return nil, errors.Newf(errors.ErrCodeInvalidFlag, "unknown halt flag %d", int(f))
	}

	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *HaltFlag) UnmarshalText(text []byte) error {
	flag, err := ParseHaltFlag(string(text))
	if err != nil {
		return err
	}

	*f = flag

	return nil
}
