package payments

import "errors"

var (
	// ErrUnknownPayment indicates the payment identifier was never created by
	// this gateway. Upstream treats it as an integrity defect, not user error.
	ErrUnknownPayment = errors.New("unknown payment")
)
