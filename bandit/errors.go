package bandit

import "errors"

// Sentinel errors for the validation taxonomy. Callers match them with
// errors.Is; the wrapped messages carry the offending id or value.
var (
	// ErrInvalidProbability reports a probability outside [0, 1].
	ErrInvalidProbability = errors.New("invalid probability")

	// ErrInvalidConfiguration reports bad construction parameters: empty
	// document sets, duplicate ids, slate size bounds, bad hyperparameters.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidSlate reports a malformed slate (duplicate ids).
	ErrInvalidSlate = errors.New("invalid slate")

	// ErrInsufficientSlate reports a slate with fewer unique ids than the
	// configured slate size.
	ErrInsufficientSlate = errors.New("insufficient slate")

	// ErrUnknownDocument reports slate ids outside the environment universe.
	ErrUnknownDocument = errors.New("unknown document")

	// ErrInvalidRoundCount reports a non-positive round count passed to Run.
	ErrInvalidRoundCount = errors.New("invalid round count")
)
