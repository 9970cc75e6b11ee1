package database

import (
	"fmt"
	"os"

	_ "github.com/godror/godror" // Oracle driver
	"github.com/jmoiron/sqlx"
)

// InitDB opens an Oracle connection through the godror driver, reading the
// connection details from environment variables. Operational tooling that
// runs next to a full Oracle client uses this instead of the pure-Go driver.
func InitDB() (*sqlx.DB, error) {
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbService := os.Getenv("DB_SERVICE_NAME")

	if dbUser == "" || dbPassword == "" || dbHost == "" || dbPort == "" || dbService == "" {
		return nil, fmt.Errorf("database environment variables (DB_USER, DB_PASSWORD, DB_HOST, DB_PORT, DB_SERVICE_NAME) must be set")
	}

	connectString := fmt.Sprintf("%s:%s/%s", dbHost, dbPort, dbService)
	dsn := fmt.Sprintf("user=\"%s\" password=\"%s\" connectString=\"%s\"", dbUser, dbPassword, connectString)

	db, err := sqlx.Connect("godror", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database using sqlx: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
