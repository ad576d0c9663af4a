package greenops

// constError is an immutable error type for sentinel errors.
// It implements the error interface and provides compile-time safety.
type constError string

func (e constError) Error() string { return string(e) }

// Error types for footprint calculations.
// These are sentinel errors that can be compared with errors.Is().
var (
	// ErrInvalidDistance indicates a distance that is empty, non-numeric,
	// not finite, or not strictly positive.
	ErrInvalidDistance = constError("invalid distance")

	// ErrUnknownMode indicates a transport mode identifier that is not in the
	// emission table. Only returned by ParseMode; the calculator itself treats
	// unknown modes as zero emission.
	ErrUnknownMode = constError("unknown transport mode")
)

var (
	// ErrNegativeValue indicates a negative carbon value.
	// Carbon emissions cannot be negative.
	ErrNegativeValue = constError("negative carbon value")

	// ErrCalculationOverflow indicates a value too large to calculate safely.
	ErrCalculationOverflow = constError("calculation overflow")
)
