package db

import (
	"sort"
	"sync"

	"github.com/ether/wsclient-go/lib/models/service"
)

type MemoryDataStore struct {
	mu           sync.RWMutex
	serviceStore map[string]service.ServiceDescription
	nameToId     map[string]string
}

func NewMemoryDataStore() *MemoryDataStore {
	return &MemoryDataStore{
		serviceStore: make(map[string]service.ServiceDescription),
		nameToId:     make(map[string]string),
	}
}

// stored drops the extension owned fields, the SQL backends never persist them either.
func stored(desc service.ServiceDescription) service.ServiceDescription {
	cloned := desc.Clone()
	cloned.Extra = nil
	return cloned
}

func (m *MemoryDataStore) DoesServiceExist(id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.serviceStore[id]
	return ok, nil
}

func (m *MemoryDataStore) CreateService(desc service.ServiceDescription) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.serviceStore[desc.ID]; ok {
		return ErrServiceAlreadyExists
	}
	if _, ok := m.nameToId[desc.Name]; ok {
		return ErrServiceNameTaken
	}
	m.serviceStore[desc.ID] = stored(desc)
	m.nameToId[desc.Name] = desc.ID
	return nil
}

func (m *MemoryDataStore) UpdateService(desc service.ServiceDescription) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.serviceStore[desc.ID]
	if !ok {
		return ErrServiceNotFound
	}
	if owner, taken := m.nameToId[desc.Name]; taken && owner != desc.ID {
		return ErrServiceNameTaken
	}
	delete(m.nameToId, existing.Name)
	m.serviceStore[desc.ID] = stored(desc)
	m.nameToId[desc.Name] = desc.ID
	return nil
}

func (m *MemoryDataStore) GetService(id string) (*service.ServiceDescription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	desc, ok := m.serviceStore[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	cloned := desc.Clone()
	return &cloned, nil
}

func (m *MemoryDataStore) GetServices(ids []string) (map[string]service.ServiceDescription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]service.ServiceDescription, len(ids))
	for _, id := range ids {
		if desc, ok := m.serviceStore[id]; ok {
			result[id] = desc.Clone()
		}
	}
	return result, nil
}

func (m *MemoryDataStore) GetServiceByName(name string) (*service.ServiceDescription, error) {
	m.mu.RLock()
	id, ok := m.nameToId[name]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrServiceNotFound
	}
	return m.GetService(id)
}

func (m *MemoryDataStore) GetServiceIds() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.serviceStore))
	for k := range m.serviceStore {
		ids = append(ids, k)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *MemoryDataStore) RemoveService(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	desc, ok := m.serviceStore[id]
	if !ok {
		return ErrServiceNotFound
	}
	delete(m.serviceStore, id)
	delete(m.nameToId, desc.Name)
	return nil
}

func (m *MemoryDataStore) Ping() error {
	return nil
}

func (m *MemoryDataStore) Close() error {
	return nil
}

var _ DataStore = (*MemoryDataStore)(nil)
