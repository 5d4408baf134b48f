package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/mcpdoctor/internal/errors"
)

// ConfigFileName is the Claude Desktop configuration file name.
const ConfigFileName = "claude_desktop_config.json"

// AppName is the application name used for mcpdoctor's own config directory.
const AppName = "mcpdoctor"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// standardDirSuffixes maps GOOS values to the conventional Claude Desktop
// config directories under the user profile. A config path whose directory
// ends with one of these (relative to any root) is considered a standard
// install location.
var standardDirSuffixes = map[string][]string{
	"darwin": {
		filepath.Join("Library", "Application Support", "Claude"),
	},
	"windows": {
		filepath.Join("AppData", "Roaming", "Claude"),
		"Claude", // %APPDATA% already points inside Roaming
	},
	"linux": {
		filepath.Join(".config", "claude"),
		filepath.Join(".config", "Claude"),
	},
}

// Home returns the user's home directory, or an empty string if it cannot
// be determined. Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ToolConfigDir returns the directory for mcpdoctor's own configuration file.
// Returns: <ConfigHome>/mcpdoctor/
func ToolConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// DefaultConfigPath returns the conventional Claude Desktop config file path
// for the current operating system. Returns an empty string if the home
// directory cannot be determined.
func DefaultConfigPath() string {
	candidates := CandidateConfigPaths()
	if len(candidates) == 0 {
		return ""
	}
	return candidates[0]
}

// CandidateConfigPaths returns every plausible Claude Desktop config file
// location for the current OS, most conventional first. All paths are
// returned whether or not the files exist.
func CandidateConfigPaths() []string {
	return candidatesFor(runtime.GOOS, Home(), os.Getenv("APPDATA"))
}

// candidatesFor computes candidate config paths for a given OS, home
// directory, and APPDATA value. Split out for testability.
func candidatesFor(goos, home, appData string) []string {
	var candidates []string

	switch goos {
	case "darwin":
		if home != "" {
			candidates = append(candidates,
				filepath.Join(home, "Library", "Application Support", "Claude", ConfigFileName))
		}
	case "windows":
		if appData != "" {
			candidates = append(candidates,
				filepath.Join(appData, "Claude", ConfigFileName))
		}
		if home != "" {
			candidates = append(candidates,
				filepath.Join(home, "AppData", "Roaming", "Claude", ConfigFileName))
		}
	default: // linux and friends
		if home != "" {
			candidates = append(candidates,
				filepath.Join(home, ".config", "claude", ConfigFileName),
				filepath.Join(home, ".config", "Claude", ConfigFileName))
		}
	}

	return dedupe(candidates)
}

// IsStandardLocation reports whether the given config file path sits in a
// conventional Claude Desktop install directory for the current OS.
func IsStandardLocation(path string) bool {
	return isStandardLocation(runtime.GOOS, path)
}

func isStandardLocation(goos, path string) bool {
	if filepath.Base(path) != ConfigFileName {
		return false
	}

	dir := filepath.Dir(filepath.Clean(path))
	suffixes, ok := standardDirSuffixes[goos]
	if !ok {
		suffixes = standardDirSuffixes["linux"]
	}
	for _, suffix := range suffixes {
		if strings.HasSuffix(dir, suffix) {
			return true
		}
	}
	return false
}

// DefaultWorkspaceDir returns the workspace directory the setup tooling
// grants the filesystem server by default: ~/claude-mcp-workspace.
func DefaultWorkspaceDir() string {
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, "claude-mcp-workspace")
}

// dedupe removes duplicate paths while preserving order.
func dedupe(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := paths[:0]
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
