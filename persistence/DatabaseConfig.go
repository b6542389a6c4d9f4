package persistence

import (
	"database/sql"
	"errors"
	"os"
	"strings"

	"github.com/go-sql-driver/mysql"
)

type DatabaseConfig struct {
	DriverType string
	DriverArgs string
}

// ParseDatabaseConfigFromEnv DATABASE_URL: mysql://root:root@(127.0.0.1:3306)/solarflow?charset=utf8mb4&parseTime=True&loc=UTC
func ParseDatabaseConfigFromEnv() (*DatabaseConfig, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, errors.New("environment variable DATABASE_URL is empty")
	}
	idx := strings.Index(databaseURL, "://")
	if idx <= 0 {
		return nil, errors.New("invalid DATABASE_URL '" + databaseURL + "'")
	}
	return &DatabaseConfig{DriverType: databaseURL[0:idx], DriverArgs: databaseURL[idx+3:]}, nil
}

// PrepareMysqlDatabase create the database of the DSN when absent.
func PrepareMysqlDatabase(driverArgs string) error {
	cfg, err := mysql.ParseDSN(driverArgs)
	if err != nil {
		return err
	}
	databaseName := cfg.DBName
	if databaseName == "" {
		return errors.New("database name is empty")
	}
	cfg.DBName = ""

	conn, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Exec("CREATE DATABASE IF NOT EXISTS `" + databaseName + "` DEFAULT CHARACTER SET utf8mb4")
	return err
}
