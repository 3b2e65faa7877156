package regret

import (
	"github.com/pkg/errors"
)

// Errors returned by Game and Player operations. Returned errors wrap one of
// these with additional context; use errors.Cause to compare.
var (
	ErrInvalidShape               = errors.New("invalid payoff tensor shape")
	ErrDimensionMismatch          = errors.New("dimension mismatch")
	ErrActionOutOfRange           = errors.New("action out of range")
	ErrNotProbabilityDistribution = errors.New("not a probability distribution")
	ErrPlayerIndex                = errors.New("invalid player index")
	ErrInvalidParticipant         = errors.New("invalid participant")
	ErrGameNotSet                 = errors.New("game is not set")
	ErrGameAlreadySet             = errors.New("game is already set")
)
