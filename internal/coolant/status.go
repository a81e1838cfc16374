package coolant

type Status int

const (
	Safe Status = iota
	Unsafe
)

func (s Status) String() string {
	if s == Safe {
		return "SAFE"
	}
	return "UNSAFE"
}

// Classify compares the outlet temperature against the maximum safe bound.
// The bound itself is safe.
func Classify(outlet, maxSafe float64) Status {
	if outlet <= maxSafe {
		return Safe
	}
	return Unsafe
}
