package config

import (
	"os"
	"path/filepath"
)

const appDir = "seqid"

// DefaultDataDir picks where the checkpoint store lives when dataDir is not
// configured: $XDG_DATA_HOME/seqid, /var/lib/seqid when writable, the
// platform application directory, then ~/.seqid. Without a home directory
// it falls back to ./data.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return "./data"
	}

	if isWritableDir("/var/lib") {
		return filepath.Join("/var/lib", appDir)
	}
	for _, candidate := range [][]string{
		{homeDir, "Library", "Application Support"}, // macOS
		{homeDir, "AppData", "Local"},               // Windows
	} {
		if isDir(filepath.Join(candidate...)) {
			return filepath.Join(append(candidate, appDir)...)
		}
	}
	return filepath.Join(homeDir, "."+appDir)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// isWritableDir probes by creating and removing a temp file.
func isWritableDir(path string) bool {
	if !isDir(path) {
		return false
	}
	f, err := os.CreateTemp(path, ".seqid-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}
