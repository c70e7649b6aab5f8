package customerror

import (
	"errors"
	"fmt"
)

type CustomError struct {
	Module   string
	Endpoint string
	Message  string
	Err      error
}

var ErrUserAlreadyExists = fmt.Errorf("UserAlreadyExists")

var ErrWrongCredentials = fmt.Errorf("WrongCredentials")

var ErrCorruptState = fmt.Errorf("CorruptState")

var ErrNotFound = fmt.Errorf("NotFound")

var ErrNotAuthenticated = fmt.Errorf("NotAuthenticated")

var ErrAccessDenied = fmt.Errorf("AccessDenied")

var ErrInvalidInput = fmt.Errorf("InvalidInput")

func (customError CustomError) Error() string {
	return fmt.Sprintf("ERROR|%s|%s:%s", customError.Endpoint, customError.Module, customError.Message)
}

func (customError CustomError) Unwrap() error {
	return customError.Err
}

func (customError *CustomError) AppendModule(module string) {
	customError.Module = module + "." + customError.Module
}

func NewError(module, endpoint, message string) error {
	return CustomError{
		Module:   module,
		Endpoint: endpoint,
		Message:  message,
	}
}

// WrapError keeps err reachable through errors.Is while formatting it the
// same way as NewError.
func WrapError(module, endpoint string, err error) error {
	return CustomError{
		Module:   module,
		Endpoint: endpoint,
		Message:  err.Error(),
		Err:      err,
	}
}

// AppendModule prefixes module onto err when it is a CustomError and returns
// any other error untouched.
func AppendModule(err error, module string) error {
	var customError CustomError
	if errors.As(err, &customError) {
		customError.AppendModule(module)
		return customError
	}
	return err
}
