package settings

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownDBType = errors.New("unknown database type")

type IDBType string

const (
	SQLITE   IDBType = "sqlite"
	MEMORY   IDBType = "memory"
	POSTGRES IDBType = "postgres"
)

// dbTypeAliases maps every accepted dbType spelling onto its backend.
var dbTypeAliases = map[string]IDBType{
	"sqlite":     SQLITE,
	"sqlite3":    SQLITE,
	"memory":     MEMORY,
	"postgres":   POSTGRES,
	"postgresql": POSTGRES,
}

func ParseDBType(s string) (IDBType, error) {
	dbType, ok := dbTypeAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDBType, s)
	}
	return dbType, nil
}

// Persistent reports whether services stored in this backend survive a restart.
func (dbType IDBType) Persistent() bool {
	return dbType != MEMORY
}

func (dbType IDBType) String() string {
	return string(dbType)
}
