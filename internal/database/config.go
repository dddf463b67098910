package database

import (
	"fmt"

	"expensetracker/internal/config"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds database configuration
type Config struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string
}

// NewConfig derives the database configuration from the application config.
func NewConfig(c *config.Config) (*Config, error) {
	cfg := &Config{
		Driver:     c.DBDriver,
		Host:       c.DBHost,
		Port:       c.DBPort,
		User:       c.DBUser,
		Password:   c.DBPassword,
		DBName:     c.DBName,
		SSLMode:    c.DBSSLMode,
		SQLitePath: c.SQLitePath,
	}
	switch cfg.Driver {
	case DriverPostgres, DriverSQLite:
		return cfg, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (use %s or %s)", cfg.Driver, DriverPostgres, DriverSQLite)
	}
}

// DSN returns the connection string for the GORM driver.
func (c *Config) DSN() string {
	if c.Driver == DriverSQLite {
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", c.SQLitePath)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// MigrateURL returns the golang-migrate database URL.
func (c *Config) MigrateURL() string {
	if c.Driver == DriverSQLite {
		return fmt.Sprintf("sqlite3://%s", c.SQLitePath)
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}
