// Copyright 2026 The Vanadium Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbutil opens and configures connections to a MySQL-like
// database, with optional TLS support.
//
// Functions in this package are not thread-safe. However, the returned
// *sql.DB is. Sane defaults are assumed: utf8mb4 encoding, UTC timezone,
// parsing date/time into time.Time.
package dbutil

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
)

// SQL statement suffix to be appended when creating tables.
const SqlCreateTableSuffix = "CHARACTER SET utf8mb4 COLLATE utf8mb4_general_ci"

// Description of the SQL configuration file format.
const SqlConfigFileDescription = `File must contain a JSON object of the following form:
   {
    "dataSourceName": "[username[:password]@][protocol[(address)]]/dbname", (the connection string required by go-sql-driver; database name must be specified, query parameters are not supported)
    "tlsDisable": "false|true", (defaults to false; if set to true, uses an unencrypted connection; otherwise, the following fields are mandatory)
    "tlsServerName": "serverName", (the domain name of the SQL server for TLS)
    "rootCertPath": "/path/server-ca.pem", (the root certificate of the SQL server for TLS)
    "clientCertPath": "/path/client-cert.pem", (the client certificate for TLS)
    "clientKeyPath": "/path/client-key.pem" (the client private key for TLS)
   }`

// SqlConfig holds the fields needed to connect to a SQL instance and to
// configure TLS encryption of the information sent over the wire.
type SqlConfig struct {
	// DataSourceName is the connection string as required by go-sql-driver.
	DataSourceName string `json:"dataSourceName"`
	// TLSDisable, if set to true, uses an unencrypted connection;
	// otherwise, the following fields are mandatory.
	TLSDisable     bool   `json:"tlsDisable"`
	TLSServerName  string `json:"tlsServerName"`
	RootCertPath   string `json:"rootCertPath"`
	ClientCertPath string `json:"clientCertPath"`
	ClientKeyPath  string `json:"clientKeyPath"`

	dsn *mysql.Config
	// tlsConfigIdentifier is the name under which the TLS configuration is
	// registered with go-sql-driver, a hash of the config source and contents.
	tlsConfigIdentifier string
}

// ParseSqlConfigFromFile reads and parses the SQL configuration file
// described by SqlConfigFileDescription.
func ParseSqlConfigFromFile(sqlConfigFile string) (*SqlConfig, error) {
	configJSON, err := os.ReadFile(sqlConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed reading SQL config file %q: %v", sqlConfigFile, err)
	}
	return ParseSqlConfig(configJSON, sqlConfigFile)
}

// ParseSqlConfig parses a JSON SQL configuration and, unless TLS is
// disabled, registers its TLS configuration with go-sql-driver. source
// names the configuration in errors and in the TLS config identifier.
// https://github.com/go-sql-driver/mysql/#dsn-data-source-name
// https://github.com/go-sql-driver/mysql/#tls
func ParseSqlConfig(configJSON []byte, source string) (*SqlConfig, error) {
	var config SqlConfig
	if err := json.Unmarshal(configJSON, &config); err != nil {
		return nil, fmt.Errorf("failed parsing SQL config %q: %v", source, err)
	}
	dsn, err := mysql.ParseDSN(config.DataSourceName)
	if err != nil {
		return nil, fmt.Errorf("invalid dataSourceName in %q: %v", source, err)
	}
	if dsn.DBName == "" {
		return nil, fmt.Errorf("invalid dataSourceName in %q: database name must be specified", source)
	}
	if len(dsn.Params) > 0 {
		return nil, fmt.Errorf("invalid dataSourceName in %q: query parameters are not supported", source)
	}
	config.dsn = dsn
	if !config.TLSDisable {
		rawHash := sha256.Sum256(append([]byte(source+":"), configJSON...))
		config.tlsConfigIdentifier = hex.EncodeToString(rawHash[:])
		if err := registerSqlTLSConfig(&config); err != nil {
			return nil, fmt.Errorf("failed registering TLS config from %q: %v", source, err)
		}
	}
	return &config, nil
}

// Connector returns a go-sql-driver configuration for c with the
// specified transaction isolation (see link below).
// https://dev.mysql.com/doc/refman/8.0/en/server-system-variables.html#sysvar_transaction_isolation
func (c *SqlConfig) Connector(txIsolation string) *mysql.Config {
	cfg := c.dsn.Clone()
	// Setting charset is unneccessary when collation is set, according to
	// https://github.com/go-sql-driver/mysql/#charset
	cfg.Collation = "utf8mb4_general_ci"
	// Maps SQL date/time values into time.Time instead of strings.
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Params = map[string]string{
		"time_zone":             "'+00:00'",
		"transaction_isolation": "'" + txIsolation + "'",
	}
	if !c.TLSDisable {
		cfg.TLSConfig = c.tlsConfigIdentifier
	}
	return cfg
}

// DSN returns the connection string for c.
func (c *SqlConfig) DSN(txIsolation string) string {
	return c.Connector(txIsolation).FormatDSN()
}

// OpenMySQL opens a connection pool to the SQL database described by
// config and checks that the server is reachable.
func OpenMySQL(ctx context.Context, config *SqlConfig, txIsolation string) (*sql.DB, error) {
	cfg := config.Connector(txIsolation)
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed configuring database connection to %q: %v", cfg.Addr, err)
	}
	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed connecting to database at %q: %v", cfg.Addr, err)
	}
	return db, nil
}

// registerSqlTLSConfig sets up the SQL connection to use TLS encryption.
// For more information see https://github.com/go-sql-driver/mysql/#tls
func registerSqlTLSConfig(config *SqlConfig) error {
	rootCertPool := x509.NewCertPool()
	pem, err := os.ReadFile(config.RootCertPath)
	if err != nil {
		return fmt.Errorf("failed reading root certificate: %v", err)
	}
	if ok := rootCertPool.AppendCertsFromPEM(pem); !ok {
		return fmt.Errorf("failed to append PEM to cert pool")
	}
	ckpair, err := tls.LoadX509KeyPair(config.ClientCertPath, config.ClientKeyPath)
	if err != nil {
		return fmt.Errorf("failed loading client key pair: %v", err)
	}
	return mysql.RegisterTLSConfig(config.tlsConfigIdentifier, &tls.Config{
		RootCAs:      rootCertPool,
		Certificates: []tls.Certificate{ckpair},
		ServerName:   config.TLSServerName,
		MinVersion:   tls.VersionTLS12,
	})
}
