// Package storage persists evaluation weights and scored positions in badger.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName = "laserchess"
	homeEnv = "LASERCHESS_HOME"
)

// GetDataDir returns the directory holding everything the evaluator keeps on
// disk, creating it if needed. $LASERCHESS_HOME wins over the per-OS location
// under which a "laserchess" directory is used.
func GetDataDir() (string, error) {
	if dir := os.Getenv(homeEnv); dir != "" {
		return ensureDir(dir)
	}

	base, err := userDataBase()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(base, appName))
}

// userDataBase picks the OS convention for per-user application data.
func userDataBase() (string, error) {
	var env string
	var fallback []string

	switch runtime.GOOS {
	case "darwin":
		fallback = []string{"Library", "Application Support"}
	case "windows":
		env = os.Getenv("APPDATA")
		fallback = []string{"AppData", "Roaming"}
	default:
		env = os.Getenv("XDG_DATA_HOME")
		fallback = []string{".local", "share"}
	}
	if env != "" {
		return env, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, fallback...)...), nil
}

// GetDatabaseDir returns the badger directory inside the data dir.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(dataDir, "db"))
}

func ensureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
