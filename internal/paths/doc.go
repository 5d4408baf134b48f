// Package paths resolves Claude Desktop configuration file locations.
//
// Claude Desktop stores its MCP server registry in claude_desktop_config.json
// under an OS-specific directory:
//
//   - macOS: ~/Library/Application Support/Claude/
//   - Windows: %APPDATA%\Claude\
//   - Linux: ~/.config/claude/ (some installs use ~/.config/Claude/)
//
// The package exposes the full candidate list rather than a single path so
// the diagnostics engine can detect multiple simultaneous install locations.
// It also resolves mcpdoctor's own XDG config directory via adrg/xdg.
package paths
