// Package config exposes the process configuration for the SGI panel.
// Values come from SGI_* environment variables, optionally overlaid by an
// sgi.toml file next to the binary.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

// StoreKind selects the repository backend. Sqlite is the default; the
// memory store exists for tests and for running without a writable disk.
type StoreKind string

const (
	StoreSQLite StoreKind = "sqlite"
	StoreMemory StoreKind = "memory"
)

// FileConfig is the shape of the optional sgi.toml overlay. Zero values mean
// "not set" and leave the environment-derived value untouched.
type FileConfig struct {
	Listen        string `toml:"listen"`
	Port          int    `toml:"port"`
	BasePath      string `toml:"basePath"`
	PageSize      int    `toml:"pageSize"`
	SessionMaxAge int    `toml:"sessionMaxAge"`
}

var fileConfig FileConfig

// LoadFile reads the toml overlay if present. A missing file is not an error;
// a malformed one is.
func LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return toml.Unmarshal(data, &fileConfig)
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("SGI_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("SGI_DEBUG") == "true"
}

func GetStoreKind() StoreKind {
	if os.Getenv("SGI_STORE") == string(StoreMemory) {
		return StoreMemory
	}
	return StoreSQLite
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("SGI_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/sgi-panel"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("SGI_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

func GetListen() string {
	if fileConfig.Listen != "" {
		return fileConfig.Listen
	}
	return os.Getenv("SGI_LISTEN")
}

func GetPort() int {
	if fileConfig.Port != 0 {
		return fileConfig.Port
	}
	return envInt("SGI_PORT", 2080)
}

// GetBasePath returns the URL prefix all routes are mounted under,
// normalized to have leading and trailing slashes.
func GetBasePath() string {
	basePath := fileConfig.BasePath
	if basePath == "" {
		basePath = os.Getenv("SGI_BASE_PATH")
	}
	if basePath == "" {
		return "/"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return basePath
}

// GetPageSize is the default page size for panel list views.
func GetPageSize() int {
	if fileConfig.PageSize != 0 {
		return fileConfig.PageSize
	}
	return envInt("SGI_PAGE_SIZE", 20)
}

// GetSessionMaxAge returns the login session lifetime in minutes.
func GetSessionMaxAge() int {
	if fileConfig.SessionMaxAge != 0 {
		return fileConfig.SessionMaxAge
	}
	return envInt("SGI_SESSION_MAX_AGE", 60)
}

func envInt(key string, def int) int {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
