package holdout

import "errors"

// ErrBadFraction is returned when the holdout fraction is non-finite or
// outside the open interval (0,1).
var ErrBadFraction = errors.New("holdout: fraction must lie in (0,1)")

// ErrInsufficientData is returned when a valid split cannot be produced:
// the fraction rounds to zero held-out cells, it would hold out every
// observation, or removal would leave a row or column with no training data.
var ErrInsufficientData = errors.New("holdout: insufficient data for validation split")

// Cell pins one held-out observation: its position and the true value that
// was removed from the training mask.
type Cell struct {
	Row, Col int
	Value    float64
}
