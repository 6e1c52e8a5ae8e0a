package warehouse

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/databricks/databricks-sql-go"
	sf "github.com/snowflakedb/gosnowflake"
)

const (
	DriverSnowflake  = "snowflake"
	DriverDatabricks = "databricks"
)

// SnowflakeDSN returns settings["dsn"] when present, otherwise builds one from the account keys.
func SnowflakeDSN(settings map[string]string) (string, error) {
	if dsn := settings["dsn"]; dsn != "" {
		return dsn, nil
	}
	cfg := &sf.Config{
		Account:   settings["account"],
		User:      settings["user"],
		Password:  settings["password"],
		Database:  settings["database"],
		Schema:    settings["schema"],
		Warehouse: settings["warehouse"],
		Role:      settings["role"],
	}
	dsn, err := sf.DSN(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to create snowflake DSN: %w", err)
	}
	return dsn, nil
}

// DatabricksDSN returns settings["dsn"] when present, otherwise builds a token DSN from host and
// http_path.
func DatabricksDSN(settings map[string]string) (string, error) {
	if dsn := settings["dsn"]; dsn != "" {
		return dsn, nil
	}
	token, path := settings["token"], settings["http_path"]
	host := strings.TrimSuffix(strings.TrimPrefix(settings["host"], "https://"), "/")
	if token == "" || host == "" || path == "" {
		return "", fmt.Errorf("databricks profile needs either dsn or token, host and http_path")
	}
	return fmt.Sprintf("token:%s@%s:443%s", token, host, path), nil
}

// Open opens a connection pool for driver. Connections are established lazily on first query.
func Open(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driver, err)
	}
	return db, nil
}
