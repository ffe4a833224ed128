package domain

// Class buckets a session by delivered energy.
type Class int

const (
	// ClassEmpty is a session that delivered zero kWh.
	ClassEmpty Class = iota
	// ClassMicro is a session that delivered a positive amount below the
	// configured microsession threshold.
	ClassMicro
	// ClassNormal is everything else: at or above the threshold, or any
	// positive delivery when no threshold is configured.
	ClassNormal
)

func (c Class) String() string {
	switch c {
	case ClassEmpty:
		return "empty"
	case ClassMicro:
		return "micro"
	default:
		return "normal"
	}
}

// Classify assigns a session to exactly one class. A threshold of zero or
// less means no microsession threshold is configured, so any positive
// delivery is normal.
func Classify(s Session, threshold float64) Class {
	switch {
	case s.SessionKWH == 0:
		return ClassEmpty
	case threshold > 0 && s.SessionKWH < threshold:
		return ClassMicro
	default:
		return ClassNormal
	}
}
