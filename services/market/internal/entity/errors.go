package entity

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindAuthorization
	KindForbidden
	KindIntegrity
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindAuthorization:
		return "authorization"
	case KindForbidden:
		return "forbidden"
	case KindIntegrity:
		return "integrity"
	default:
		return "internal"
	}
}

// Error is a domain failure. Two errors are the same (errors.Is) when their
// codes match, so a sentinel can be re-issued with a more specific message.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func NewError(kind ErrorKind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func (e *Error) Withf(format string, args ...interface{}) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports KindInternal for anything that is not a domain error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "internal_error"
}

var (
	ErrInvalidAmount  = NewError(KindValidation, "invalid_amount", "amount must be positive")
	ErrReasonRequired = NewError(KindValidation, "reason_required", "rejection reason is required")
	ErrInvalidStatus  = NewError(KindValidation, "invalid_status", "invalid status value")
	ErrInvalidInput   = NewError(KindValidation, "invalid_input", "invalid input")

	ErrUserNotFound     = NewError(KindNotFound, "user_not_found", "user not found")
	ErrLeadNotFound     = NewError(KindNotFound, "lead_not_found", "lead not found")
	ErrLeadTypeNotFound = NewError(KindNotFound, "lead_type_not_found", "lead type not found")
	ErrOrderNotFound    = NewError(KindNotFound, "order_not_found", "order not found")
	ErrPaymentNotFound  = NewError(KindNotFound, "payment_not_found", "payment not found")
	ErrPayoutNotFound   = NewError(KindNotFound, "payout_not_found", "payout not found")
	ErrTopupNotFound    = NewError(KindNotFound, "topup_not_found", "topup not found")

	ErrLeadUnavailable         = NewError(KindConflict, "lead_unavailable", "lead not available")
	ErrAlreadyPurchased        = NewError(KindConflict, "already_purchased", "lead already purchased")
	ErrDuplicateRequest        = NewError(KindConflict, "duplicate_request", "lead already requested by this manager")
	ErrInsufficientBalance     = NewError(KindConflict, "insufficient_balance", "insufficient balance")
	ErrDuplicatePendingRequest = NewError(KindConflict, "duplicate_pending_request", "a pending request already exists")
	ErrInvalidStateTransition  = NewError(KindConflict, "invalid_state_transition", "invalid state transition")
	ErrInvalidRefundState      = NewError(KindConflict, "invalid_refund_state", "invalid payment for refund")

	ErrUnauthorized = NewError(KindAuthorization, "unauthorized", "invalid signature")
	ErrForbidden    = NewError(KindForbidden, "forbidden", "forbidden")

	ErrIntegrity = NewError(KindIntegrity, "integrity_violation", "data integrity violation")
)
