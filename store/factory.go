package store

import (
	"fmt"
	"strings"
)

const (
	EngineJSON     = "json"
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
)

// NewByEngine opens the store selected by engine. location is a file path
// for json/sqlite and a DSN for postgres.
func NewByEngine(engine string, location string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineSQLite:
		return OpenSQLite(location)
	case EngineJSON:
		return NewFileStore(location)
	case EnginePostgres:
		return OpenPostgres(location)
	default:
		return nil, fmt.Errorf("unsupported store engine: %s", engine)
	}
}
