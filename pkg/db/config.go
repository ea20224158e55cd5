/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package db

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config selects a backend and its connection settings. Environment
// variables are treated as read-only overrides at load time.
type Config struct {
	Driver   string `yaml:"driver"` // "sqlite", "mysql" or "postgres"
	Path     string `yaml:"path,omitempty"`
	Host     string `yaml:"host,omitempty"`
	Port     int    `yaml:"port,omitempty"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
	Database string `yaml:"database,omitempty"`
	// DSN, when set, wins over the field-by-field settings.
	DSN string `yaml:"dsn,omitempty"`
}

// Env var names used as overrides.
const (
	EnvDriver   = "ADERLEE_DB_DRIVER"
	EnvPath     = "ADERLEE_DB_PATH"
	EnvHost     = "ADERLEE_DB_HOST"
	EnvPort     = "ADERLEE_DB_PORT"
	EnvUser     = "ADERLEE_DB_USER"
	EnvPassword = "ADERLEE_DB_PASSWORD"
	EnvDatabase = "ADERLEE_DB_NAME"
	EnvDSN      = "ADERLEE_DB_DSN"
)

// LoadConfig reads a YAML config file and merges environment overrides.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv(EnvDriver)); v != "" {
		c.Driver = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPath)); v != "" {
		c.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvHost)); v != "" {
		c.Host = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvPort)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Port = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvUser)); v != "" {
		c.User = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		c.Password = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDatabase)); v != "" {
		c.Database = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDSN)); v != "" {
		c.DSN = v
	}
}

// Manager returns the backend manager the config describes. No connection
// is opened.
func (c Config) Manager() (Manager, error) {
	switch strings.ToLower(strings.TrimSpace(c.Driver)) {
	case "", "sqlite", "sqlite3":
		if c.Path == "" {
			return nil, fmt.Errorf("sqlite driver requires a path")
		}
		return NewSQLite(c.Path), nil
	case "mysql", "mariadb":
		if c.DSN != "" {
			return NewMySQLDSN(c.DSN), nil
		}
		host := c.Host
		if host == "" {
			host = "127.0.0.1"
		}
		port := c.Port
		if port == 0 {
			port = 3306
		}
		return NewMySQL(host, port, c.User, c.Password, c.Database), nil
	case "postgres", "postgresql", "pgx":
		if c.DSN != "" {
			return NewPostgres(c.DSN), nil
		}
		if c.Host != "" {
			return NewPostgres(c.postgresURL()), nil
		}
		// NewPostgres falls back to the env chain for an empty DSN.
		return NewPostgres(""), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", c.Driver)
	}
}

func (c Config) postgresURL() string {
	port := c.Port
	if port == 0 {
		port = 5432
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, port),
		Path:     c.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
