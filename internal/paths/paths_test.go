package paths

import (
	"path/filepath"
	"testing"
)

func TestCandidatesFor(t *testing.T) {
	tests := []struct {
		name    string
		goos    string
		home    string
		appData string
		want    []string
	}{
		{
			name: "darwin",
			goos: "darwin",
			home: "/Users/sam",
			want: []string{
				"/Users/sam/Library/Application Support/Claude/claude_desktop_config.json",
			},
		},
		{
			name:    "windows with APPDATA",
			goos:    "windows",
			home:    filepath.Join("C:", "Users", "sam"),
			appData: filepath.Join("C:", "Users", "sam", "AppData", "Roaming"),
			want: []string{
				filepath.Join("C:", "Users", "sam", "AppData", "Roaming", "Claude", ConfigFileName),
			},
		},
		{
			name: "linux",
			goos: "linux",
			home: "/home/sam",
			want: []string{
				"/home/sam/.config/claude/claude_desktop_config.json",
				"/home/sam/.config/Claude/claude_desktop_config.json",
			},
		},
		{
			name: "no home",
			goos: "linux",
			home: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := candidatesFor(tt.goos, tt.home, tt.appData)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d candidates %v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("candidate[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCandidatesFor_WindowsDedupe(t *testing.T) {
	home := filepath.Join("C:", "Users", "sam")
	appData := filepath.Join(home, "AppData", "Roaming")
	got := candidatesFor("windows", home, appData)
	if len(got) != 1 {
		t.Fatalf("expected deduped single candidate, got %v", got)
	}
}

func TestIsStandardLocation(t *testing.T) {
	tests := []struct {
		name string
		goos string
		path string
		want bool
	}{
		{
			name: "darwin standard",
			goos: "darwin",
			path: "/Users/sam/Library/Application Support/Claude/claude_desktop_config.json",
			want: true,
		},
		{
			name: "linux lowercase",
			goos: "linux",
			path: "/home/sam/.config/claude/claude_desktop_config.json",
			want: true,
		},
		{
			name: "linux capitalized",
			goos: "linux",
			path: "/home/sam/.config/Claude/claude_desktop_config.json",
			want: true,
		},
		{
			name: "custom directory",
			goos: "linux",
			path: "/opt/claude/claude_desktop_config.json",
			want: false,
		},
		{
			name: "wrong file name in standard dir",
			goos: "linux",
			path: "/home/sam/.config/claude/config.json",
			want: false,
		},
		{
			name: "windows roaming",
			goos: "windows",
			path: filepath.Join("C:", "Users", "sam", "AppData", "Roaming", "Claude", ConfigFileName),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isStandardLocation(tt.goos, tt.path); got != tt.want {
				t.Errorf("isStandardLocation(%q, %q) = %v, want %v", tt.goos, tt.path, got, tt.want)
			}
		})
	}
}

func TestDedupePreservesOrder(t *testing.T) {
	got := dedupe([]string{"/a", "/b", "/a", "/c", "/b"})
	want := []string{"/a", "/b", "/c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dedupe[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
