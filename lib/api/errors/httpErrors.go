package errors

import (
	"errors"

	"github.com/ether/wsclient-go/lib/db"
	"github.com/ether/wsclient-go/lib/endpoint"
	"github.com/ether/wsclient-go/lib/service"
	"github.com/go-playground/validator/v10"
)

var InternalServerError = Error{
	Message: "Internal server error",
	Error:   500,
}

var InvalidRequestError = Error{
	Message: "Invalid request",
	Error:   400,
}

var ServiceNotFoundError = Error{
	Message: "Service not found",
	Error:   404,
}

var ServiceNameTakenError = Error{
	Message: "Service name already taken",
	Error:   409,
}

func NewValidationError(err error) Error {
	return Error{
		Message: "Validation failed: " + err.Error(),
		Error:   400,
	}
}

func NewMissingParamError(paramName string) Error {
	return Error{
		Message: "Missing parameter: " + paramName,
		Error:   400,
	}
}

// FromError maps a manager or endpoint error onto the response to send.
func FromError(err error) Error {
	var validationErrors validator.ValidationErrors
	var remoteErr *endpoint.RemoteError
	switch {
	case errors.Is(err, db.ErrServiceNotFound):
		return ServiceNotFoundError
	case errors.Is(err, db.ErrServiceNameTaken), errors.Is(err, db.ErrServiceAlreadyExists):
		return ServiceNameTakenError
	case errors.Is(err, service.ErrInvalidService), errors.As(err, &validationErrors):
		return NewValidationError(err)
	case errors.Is(err, endpoint.ErrUnknownEndpointType), errors.Is(err, endpoint.ErrUnknownOperation):
		return Error{Message: err.Error(), Error: 400}
	case errors.As(err, &remoteErr):
		return Error{Message: remoteErr.Error(), Error: 500}
	default:
		return InternalServerError
	}
}
