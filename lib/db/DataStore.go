package db

import "github.com/ether/wsclient-go/lib/models/service"

type ServiceMethods interface {
	DoesServiceExist(id string) (bool, error)
	CreateService(desc service.ServiceDescription) error
	UpdateService(desc service.ServiceDescription) error
	GetService(id string) (*service.ServiceDescription, error)
	// GetServices returns the stored descriptions of ids, leaving out the ones that do not exist.
	GetServices(ids []string) (map[string]service.ServiceDescription, error)
	GetServiceByName(name string) (*service.ServiceDescription, error)
	GetServiceIds() ([]string, error)
	RemoveService(id string) error
}

type DataStore interface {
	ServiceMethods
	Ping() error
	Close() error
}
