// Package severity defines the five-level severity scale shared by every
// diagnostic component. Keeping the scale and its comparator in one place
// guarantees that every report path sorts identically.
package severity

// Severity ranks how strongly a detected issue blocks a working MCP setup.
type Severity string

const (
	// Critical issues prevent MCP from functioning at all.
	Critical Severity = "critical"

	// High issues break a capability the user almost certainly wants.
	High Severity = "high"

	// Medium issues degrade behavior or invite future breakage.
	Medium Severity = "medium"

	// Low issues are cosmetic or minor inefficiencies.
	Low Severity = "low"

	// Warning flags something suspicious that may be intentional.
	Warning Severity = "warning"
)

// ranks orders severities from most to least urgent. Unknown severities
// sort after warning so a bad tag can never jump the queue.
var ranks = map[Severity]int{
	Critical: 0,
	High:     1,
	Medium:   2,
	Low:      3,
	Warning:  4,
}

// Rank returns the canonical sort rank: critical 0 through warning 4.
// Unknown severities rank 5.
func Rank(s Severity) int {
	if r, ok := ranks[s]; ok {
		return r
	}
	return len(ranks)
}

// Compare orders two severities by rank. Negative means a sorts before b.
// This is the single comparator used by all report generation.
func Compare(a, b Severity) int {
	return Rank(a) - Rank(b)
}

// Valid reports whether s is one of the five defined levels.
func Valid(s Severity) bool {
	_, ok := ranks[s]
	return ok
}

// Blocking reports whether issues of this severity should block usage,
// which drives the CLI exit code.
func Blocking(s Severity) bool {
	return s == Critical || s == High
}
