package selection

import "errors"

var (
	// ErrBudgetExceeded indicates the critical tier alone does not fit the
	// configured budget. Fatal for the static document renderer only.
	ErrBudgetExceeded = errors.New("critical chunks exceed size budget")
)
