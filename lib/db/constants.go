package db

import "errors"

const ServiceNotFoundError = "service not found"
const ServiceNameTakenError = "service name already taken"
const ServiceAlreadyExistsError = "service already exists"

var (
	ErrServiceNotFound      = errors.New(ServiceNotFoundError)
	ErrServiceNameTaken     = errors.New(ServiceNameTakenError)
	ErrServiceAlreadyExists = errors.New(ServiceAlreadyExistsError)
)
