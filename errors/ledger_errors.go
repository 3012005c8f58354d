package errors

// LedgerErrorCode represents standardized error codes for block acceptance
type LedgerErrorCode string

const (
	// ErrCodeDuplicate: the block hash is already recorded
	ErrCodeDuplicate LedgerErrorCode = "duplicate"
	// ErrCodeSignature: the signature is invalid or the key/signature bytes are malformed
	ErrCodeSignature LedgerErrorCode = "signature"
	// ErrCodeFork: the block's parent is not the head of the owner's chain
	ErrCodeFork LedgerErrorCode = "fork"
	// ErrCodeWork: the provided proof-of-work is below the threshold
	ErrCodeWork LedgerErrorCode = "work"
	// ErrCodeReceived: the referenced send has already been received
	ErrCodeReceived LedgerErrorCode = "received"
	// ErrCodeZeroSend: the send transfers no value (reserved, not enforced on insert)
	ErrCodeZeroSend LedgerErrorCode = "zero_send"
	// ErrCodeOverSend: the declared send balance exceeds the available funds
	ErrCodeOverSend LedgerErrorCode = "over_send"
	// ErrCodeMissing: a block this block references is absent from the index
	ErrCodeMissing LedgerErrorCode = "missing"
	// ErrCodeInvalid: a referenced block is the wrong variant for its role,
	// e.g. an open whose source is not a send
	ErrCodeInvalid LedgerErrorCode = "invalid"
	// ErrCodeUnreachable: internal invariant violation; indicates a corrupt
	// ledger, not a caller error
	ErrCodeUnreachable LedgerErrorCode = "unreachable"
)

// LedgerError represents a standardized block acceptance error
type LedgerError struct {
	Code    LedgerErrorCode `json:"code"`
	Message string          `json:"message"`
}

// Error implements the error interface
func (e *LedgerError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Is matches any LedgerError carrying the same code, so errors.Is works
// across wrapped instances
func (e *LedgerError) Is(target error) bool {
	t, ok := target.(*LedgerError)
	return ok && t.Code == e.Code
}

var (
	ErrDuplicate   = &LedgerError{ErrCodeDuplicate, "block hash already recorded"}
	ErrSignature   = &LedgerError{ErrCodeSignature, "signature verification failed"}
	ErrFork        = &LedgerError{ErrCodeFork, "parent is not the current head of the account"}
	ErrWork        = &LedgerError{ErrCodeWork, "proof-of-work below threshold"}
	ErrReceived    = &LedgerError{ErrCodeReceived, "referenced send already received"}
	ErrZeroSend    = &LedgerError{ErrCodeZeroSend, "send transfers no value"}
	ErrOverSend    = &LedgerError{ErrCodeOverSend, "declared balance exceeds available funds"}
	ErrMissing     = &LedgerError{ErrCodeMissing, "referenced block not found"}
	ErrInvalid     = &LedgerError{ErrCodeInvalid, "referenced block has the wrong variant"}
	ErrUnreachable = &LedgerError{ErrCodeUnreachable, "ledger state violates a structural invariant"}
)

// NewError creates a new LedgerError and returns it as error interface
func NewError(code LedgerErrorCode, message string) error {
	return &LedgerError{
		Code:    code,
		Message: message,
	}
}

// Code extracts the LedgerErrorCode from err, or "" if err is not a LedgerError
func Code(err error) LedgerErrorCode {
	if le, ok := err.(*LedgerError); ok {
		return le.Code
	}
	return ""
}
