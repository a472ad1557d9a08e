package core

type ErrorNotFound struct {
}

func (e ErrorNotFound) Error() string {
	return "Not Found"
}

func NewErrorNotFound() ErrorNotFound {
	return ErrorNotFound{}
}

type ErrorPermissionDenied struct {
}

func (e ErrorPermissionDenied) Error() string {
	return "Permission Denied"
}

func NewErrorPermissionDenied() ErrorPermissionDenied {
	return ErrorPermissionDenied{}
}

type ErrorUnauthenticated struct {
}

func (e ErrorUnauthenticated) Error() string {
	return "Unauthenticated"
}

func NewErrorUnauthenticated() ErrorUnauthenticated {
	return ErrorUnauthenticated{}
}

type ErrorTokenMalformed struct {
}

func (e ErrorTokenMalformed) Error() string {
	return "Token Malformed"
}

func NewErrorTokenMalformed() ErrorTokenMalformed {
	return ErrorTokenMalformed{}
}

type ErrorTokenBadSignature struct {
}

func (e ErrorTokenBadSignature) Error() string {
	return "Token Bad Signature"
}

func NewErrorTokenBadSignature() ErrorTokenBadSignature {
	return ErrorTokenBadSignature{}
}

type ErrorTokenExpired struct {
}

func (e ErrorTokenExpired) Error() string {
	return "Token Expired"
}

func NewErrorTokenExpired() ErrorTokenExpired {
	return ErrorTokenExpired{}
}

type ErrorTokenRevoked struct {
}

func (e ErrorTokenRevoked) Error() string {
	return "Token Revoked"
}

func NewErrorTokenRevoked() ErrorTokenRevoked {
	return ErrorTokenRevoked{}
}

type ErrorInvalidStatus struct {
}

func (e ErrorInvalidStatus) Error() string {
	return "Invalid Status"
}

func NewErrorInvalidStatus() ErrorInvalidStatus {
	return ErrorInvalidStatus{}
}

// ErrorStoreUnavailable wraps a transient storage failure. It is the only
// condition eligible for automatic retry by callers.
type ErrorStoreUnavailable struct {
	err error
}

func (e ErrorStoreUnavailable) Error() string {
	if e.err == nil {
		return "Store Unavailable"
	}
	return "Store Unavailable: " + e.err.Error()
}

func (e ErrorStoreUnavailable) Unwrap() error {
	return e.err
}

func NewErrorStoreUnavailable(err error) ErrorStoreUnavailable {
	return ErrorStoreUnavailable{err: err}
}
