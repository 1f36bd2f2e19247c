package db

import (
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/ether/wsclient-go/lib/models/service"
)

const serviceTable = "wsclient_service"

// sqlStore holds the service queries shared by the SQL backends. Only the placeholder
// format of the builder differs between dialects.
type sqlStore struct {
	sqlDB   *sql.DB
	builder sq.StatementBuilderType
}

// ============== SERVICE METHODS ==============

func (d sqlStore) DoesServiceExist(id string) (bool, error) {
	resultedSQL, args, err := d.builder.
		Select("1").
		From(serviceTable).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, err
	}

	var exists int
	err = d.sqlDB.QueryRow(resultedSQL, args...).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// nameTaken reports whether name belongs to a service other than id.
func (d sqlStore) nameTaken(name string, id string) (bool, error) {
	resultedSQL, args, err := d.builder.
		Select("id").
		From(serviceTable).
		Where(sq.Eq{"name": name}).
		Where(sq.NotEq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, err
	}

	var owner string
	err = d.sqlDB.QueryRow(resultedSQL, args...).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (d sqlStore) CreateService(desc service.ServiceDescription) error {
	exists, err := d.DoesServiceExist(desc.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrServiceAlreadyExists
	}
	taken, err := d.nameTaken(desc.Name, desc.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrServiceNameTaken
	}

	values, err := serviceValues(desc)
	if err != nil {
		return err
	}
	resultedSQL, args, err := d.builder.
		Insert(serviceTable).
		Columns(serviceColumns...).
		Values(values...).
		ToSql()
	if err != nil {
		return err
	}

	_, err = d.sqlDB.Exec(resultedSQL, args...)
	return err
}

func (d sqlStore) UpdateService(desc service.ServiceDescription) error {
	taken, err := d.nameTaken(desc.Name, desc.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrServiceNameTaken
	}

	values, err := serviceValues(desc)
	if err != nil {
		return err
	}
	update := d.builder.Update(serviceTable)
	// values[0] is the id, it only appears in the WHERE clause
	for i, column := range serviceColumns[1:] {
		update = update.Set(column, values[i+1])
	}
	resultedSQL, args, err := update.
		Where(sq.Eq{"id": desc.ID}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := d.sqlDB.Exec(resultedSQL, args...)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

func (d sqlStore) GetService(id string) (*service.ServiceDescription, error) {
	resultedSQL, args, err := d.builder.
		Select(serviceColumns...).
		From(serviceTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	desc, err := ReadToServiceDescription(d.sqlDB.QueryRow(resultedSQL, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	return desc, err
}

func (d sqlStore) GetServices(ids []string) (map[string]service.ServiceDescription, error) {
	result := make(map[string]service.ServiceDescription, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	resultedSQL, args, err := d.builder.
		Select(serviceColumns...).
		From(serviceTable).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, err
	}

	query, err := d.sqlDB.Query(resultedSQL, args...)
	if err != nil {
		return nil, err
	}
	defer query.Close()

	for query.Next() {
		desc, err := ReadToServiceDescription(query)
		if err != nil {
			return nil, err
		}
		result[desc.ID] = *desc
	}
	return result, query.Err()
}

func (d sqlStore) GetServiceByName(name string) (*service.ServiceDescription, error) {
	resultedSQL, args, err := d.builder.
		Select(serviceColumns...).
		From(serviceTable).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, err
	}

	desc, err := ReadToServiceDescription(d.sqlDB.QueryRow(resultedSQL, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	return desc, err
}

func (d sqlStore) GetServiceIds() ([]string, error) {
	resultedSQL, _, err := d.builder.
		Select("id").
		From(serviceTable).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	query, err := d.sqlDB.Query(resultedSQL)
	if err != nil {
		return nil, err
	}
	defer query.Close()

	ids := make([]string, 0)
	for query.Next() {
		var id string
		if err := query.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, query.Err()
}

func (d sqlStore) RemoveService(id string) error {
	resultedSQL, args, err := d.builder.
		Delete(serviceTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := d.sqlDB.Exec(resultedSQL, args...)
	if err != nil {
		return err
	}
	return expectAffected(result)
}

// ============== LIFECYCLE ==============

func (d sqlStore) Ping() error {
	return d.sqlDB.Ping()
}

func (d sqlStore) Close() error {
	return d.sqlDB.Close()
}

func expectAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}
