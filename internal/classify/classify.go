// Package classify distinguishes host-managed built-in integrations from
// user-managed custom MCP servers.
//
// Classification is a case-insensitive substring match against a fixed token
// table. The match is deliberately broad: a server named "github-custom" or
// even "gitlab" is tagged as the GitHub built-in. Narrowing it would change
// observable behavior that existing setups depend on, so the breadth is kept
// and documented rather than fixed; there is no override hatch.
package classify

import "strings"

// Category identifies which built-in capability a server name maps to.
type Category string

const (
	CategoryFilesystem Category = "filesystem"
	CategoryContext7   Category = "context7"
	CategoryGitHub     Category = "github"
)

// builtinTokens is the fixed classification table. Longer tokens come first
// so "filesystem" wins over "file" and "fs" when reporting a category,
// though all three resolve to the same one. Order is fixed for determinism.
var builtinTokens = []struct {
	token    string
	category Category
}{
	{"filesystem", CategoryFilesystem},
	{"file", CategoryFilesystem},
	{"fs", CategoryFilesystem},
	{"context7", CategoryContext7},
	{"context", CategoryContext7},
	{"github", CategoryGitHub},
	{"git", CategoryGitHub},
}

// Classification tags a server name as built-in (with category) or custom.
type Classification struct {
	// IsBuiltIn is true when the name matches a built-in token.
	IsBuiltIn bool `json:"isBuiltIn"`

	// Category is set only for built-in servers.
	Category Category `json:"category,omitempty"`
}

// Classify tags a server name. Matching is case-insensitive and idempotent:
// the name is lowered once and compared against each table token by
// substring containment.
func Classify(serverName string) Classification {
	lower := strings.ToLower(serverName)
	for _, entry := range builtinTokens {
		if strings.Contains(lower, entry.token) {
			return Classification{IsBuiltIn: true, Category: entry.category}
		}
	}
	return Classification{}
}

// MatchesCategory reports whether a server name maps to the given built-in
// category. The capability analyzer reuses this so both components share
// one matching rule.
func MatchesCategory(serverName string, category Category) bool {
	c := Classify(serverName)
	return c.IsBuiltIn && c.Category == category
}
