package mcpconfig

import "sort"

// Document is the root Claude Desktop configuration object.
type Document struct {
	// MCPServers maps server names to their launch definitions.
	MCPServers map[string]*ServerEntry `json:"mcpServers"`
}

// ServerEntry is one registered MCP server: a launchable helper process
// defined by command, arguments, and environment.
type ServerEntry struct {
	// Command is the executable used to launch the server.
	Command string `json:"command,omitempty"`

	// Args are command-line arguments in source order.
	Args []string `json:"args,omitempty"`

	// Env contains environment variables passed to the server process.
	Env map[string]string `json:"env,omitempty"`
}

// NewDocument creates an empty Document with an initialized server map.
// This is the loader's universal fallback value.
func NewDocument() *Document {
	return &Document{
		MCPServers: make(map[string]*ServerEntry),
	}
}

// ServerNames returns all server names in sorted order. Iterating in this
// order keeps diagnostic output deterministic across runs.
func (d *Document) ServerNames() []string {
	names := make([]string, 0, len(d.MCPServers))
	for name := range d.MCPServers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
