package app

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appDirName     = "fitlog"
	DataFileName   = "data.json"
	TokensFileName = "fitbit_tokens.json"
	backupDirName  = "backups"
)

// DefaultDataDir is fitlog's directory under the user config dir.
func DefaultDataDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// Paths locates every file fitlog keeps in its data directory.
type Paths struct {
	Dir string
}

func (p Paths) DataFile() string {
	return filepath.Join(p.Dir, DataFileName)
}

func (p Paths) TokensFile() string {
	return filepath.Join(p.Dir, TokensFileName)
}

func (p Paths) BackupDir() string {
	return filepath.Join(p.Dir, backupDirName)
}

func EnsureDataDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}
