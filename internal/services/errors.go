package services

// Service errors
var (
	ErrNameRequired       = &ServiceError{Message: "name is required"}
	ErrPasscodeTooShort   = &ServiceError{Message: "passcode must be at least 4 characters"}
	ErrNameTaken          = &ServiceError{Message: "that name is already taken"}
	ErrInvalidCredentials = &ServiceError{Message: "invalid name or passcode"}
	ErrBracketNotFound    = &ServiceError{Message: "bracket not found"}
	ErrNotOwner           = &ServiceError{Message: "bracket belongs to another user"}
	ErrBracketLocked      = &ServiceError{Message: "bracket can no longer be changed"}
	ErrBracketIncomplete  = &ServiceError{Message: "all games must be picked before submitting"}
	ErrAlreadySubmitted   = &ServiceError{Message: "bracket has already been submitted"}
	ErrBaseURLNotSet      = &ServiceError{Message: "base_url is not configured"}
)

// ServiceError represents a service-level error
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}
