package commands

import (
	"os"
	"path/filepath"

	"github.com/Spruttybangbang/aim25s-website/internal/catalog"
	"github.com/Spruttybangbang/aim25s-website/internal/core/config"
	"github.com/Spruttybangbang/aim25s-website/internal/tui"
	"github.com/Spruttybangbang/aim25s-website/pkg/utils"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	APIURL     string

	// Interactive is set when the TUI will take over the terminal
	Interactive bool

	// Deferred holds log output while the TUI owns the terminal
	Deferred *utils.DeferredWriter

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Catalog serves every directory read and submission
	Catalog *catalog.Service

	Build tui.BuildInfo
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "aim25s", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "aim25s")
}
