package types

type Resolution string

const (
	ResolutionTick   Resolution = "tick"
	ResolutionSecond Resolution = "second"
	ResolutionMinute Resolution = "minute"
	ResolutionHour   Resolution = "hour"
	ResolutionDaily  Resolution = "daily"
)

// AllResolutions lists every resolution a subscription may request.
var AllResolutions = []Resolution{
	ResolutionTick,
	ResolutionSecond,
	ResolutionMinute,
	ResolutionHour,
	ResolutionDaily,
}

// IsValid reports whether r is a known resolution.
func (r Resolution) IsValid() bool {
	for _, known := range AllResolutions {
		if r == known {
			return true
		}
	}

	return false
}
