package shared

import "errors"

var (
	// ErrCompanyRequired indicates a request without a company filter.
	ErrCompanyRequired = errors.New("Company is required")
	// ErrAccountNotFound indicates a tree node that does not resolve to an account.
	ErrAccountNotFound = errors.New("Account not found")
	// ErrParentNotFound indicates an unresolvable parent for a new tree node.
	ErrParentNotFound = errors.New("accounting: parent not found")
	// ErrRootCompanyOnly indicates creation against a child company that disallows it.
	ErrRootCompanyOnly = errors.New("accounting: accounts must be added to the root company")
	// ErrDuplicate indicates a record with the same name already exists.
	ErrDuplicate = errors.New("accounting: record already exists")
	// ErrInvalidInput indicates a request failing validation.
	ErrInvalidInput = errors.New("accounting: invalid input")
	// ErrNoFiscalYear indicates no fiscal year covers a date.
	ErrNoFiscalYear = errors.New("accounting: no fiscal year found")
)

// ValidationError carries a user-facing message and optional field errors.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap lets callers match validation failures with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Invalid builds a ValidationError with a message only.
func Invalid(message string) error {
	return &ValidationError{Message: message}
}

// RootCompanyError rejects creation against a child company.
type RootCompanyError struct {
	RootCompany string
}

func (e *RootCompanyError) Error() string {
	return "Please add the account to root level Company - " + e.RootCompany
}

// Is matches ErrRootCompanyOnly.
func (e *RootCompanyError) Is(target error) bool {
	return target == ErrRootCompanyOnly
}

// ParentNotFoundError reports a parent value that resolves to nothing.
type ParentNotFoundError struct {
	Parent  string
	Company string
}

func (e *ParentNotFoundError) Error() string {
	return "No account found for '" + e.Parent + "' in company '" + e.Company + "'"
}

// Is matches ErrParentNotFound.
func (e *ParentNotFoundError) Is(target error) bool {
	return target == ErrParentNotFound
}
