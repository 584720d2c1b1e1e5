package db

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"taskboard/internal/config"
)

// Connect opens the local storage database selected by the configuration.
func Connect(conf *config.Config) (*sqlx.DB, error) {
	switch conf.StorageDriver {
	case config.StorageMySQL:
		return connectMySQL(conf)
	case config.StorageSQLite:
		return ConnectSQLite(conf.StoragePath)
	}
	return nil, fmt.Errorf("storage driver %q is not backed by sql", conf.StorageDriver)
}

// ConnectSQLite opens an embedded sqlite database. A single connection keeps
// ":memory:" databases shared across queries.
func ConnectSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func connectMySQL(conf *config.Config) (*sqlx.DB, error) {
	params := conf.DbParams
	if params == "" {
		params = "parseTime=true"
	}

	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?%s",
		conf.DbUser,
		conf.DbPassword,
		conf.DbHost,
		conf.DbPort,
		conf.DbName,
		params,
	)

	return sqlx.Connect("mysql", dsn)
}
