package apperrors

// ledgerError is a named precondition failure. It matches its own identity
// and the broader category it belongs to, so callers can branch on either.
type ledgerError struct {
	msg  string
	kind []error
}

func (e *ledgerError) Error() string {
	return e.msg
}

func (e *ledgerError) Is(target error) bool {
	for _, k := range e.kind {
		if target == k {
			return true
		}
	}
	return false
}

func newLedgerError(msg string, kind ...error) error {
	return &ledgerError{msg: msg, kind: kind}
}

// Validation failures. No write has happened when one of these is returned.
var (
	ErrEmptyCart           = newLedgerError("cart is empty", ErrValidation)
	ErrNoOpenSession       = newLedgerError("no open cash session", ErrValidation)
	ErrInsufficientStamps  = newLedgerError("insufficient stamp balance", ErrValidation)
	ErrSessionAlreadyOpen  = newLedgerError("a cash session is already open", ErrValidation, ErrDuplicate)
	ErrSessionNotFound     = newLedgerError("cash session not found", ErrValidation, ErrNotFound)
	ErrSessionClosed       = newLedgerError("cash session is already closed", ErrValidation, ErrConflict)
	ErrUnknownProduct      = newLedgerError("product not found in catalog", ErrValidation)
	ErrInvalidQuantity     = newLedgerError("quantity must be greater than zero", ErrValidation)
	ErrInsufficientStock   = newLedgerError("insufficient ingredient stock", ErrValidation)
	ErrInsufficientPayment = newLedgerError("amount received is less than the sale total", ErrValidation)
	ErrInvalidPayment      = newLedgerError("unsupported payment method", ErrValidation)
	ErrRegisterRequired    = newLedgerError("register id is required when sessions are scoped per register", ErrValidation)
	ErrVoidReasonRequired  = newLedgerError("void reason is required", ErrValidation)
	ErrSaleNotFound        = newLedgerError("sale not found", ErrValidation, ErrNotFound)
	ErrIngredientNotFound  = newLedgerError("ingredient not found", ErrValidation, ErrNotFound)
	ErrCustomerNotFound    = newLedgerError("customer not found", ErrValidation, ErrNotFound)

	ErrInvalidVoidTransition = newLedgerError("sale status does not allow this void transition", ErrValidation, ErrConflict)
)

// Consistency failures raised during the write phase.
var (
	ErrCommitConflict = newLedgerError("sale could not be committed because of concurrent updates, retry the checkout", ErrConflict)
	ErrPartialCommit  = newLedgerError("sale data may already be partially recorded; reconcile inventory manually", ErrInternal)
)
