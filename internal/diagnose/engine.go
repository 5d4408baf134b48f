// Package diagnose is the top-level diagnostic engine. It loads the
// configuration, classifies servers, analyzes capabilities, runs failure
// detection, and renders everything into one structured Diagnosis that
// presentation layers consume without re-deriving anything.
package diagnose

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thoreinstein/mcpdoctor/internal/capability"
	"github.com/thoreinstein/mcpdoctor/internal/classify"
	"github.com/thoreinstein/mcpdoctor/internal/edgecase"
	"github.com/thoreinstein/mcpdoctor/internal/failure"
	"github.com/thoreinstein/mcpdoctor/internal/mcpconfig"
	"github.com/thoreinstein/mcpdoctor/internal/paths"
	"github.com/thoreinstein/mcpdoctor/internal/severity"
	"github.com/thoreinstein/mcpdoctor/internal/troubleshoot"
)

// Options configures a diagnostic run.
type Options struct {
	// ConfigPath is the configuration file to diagnose. Empty selects
	// the platform default.
	ConfigPath string

	// ProjectPath is the directory the user wants covered by the
	// filesystem server. Optional.
	ProjectPath string

	// CandidatePaths overrides the per-OS candidate list used for the
	// multiple-config and edge-case checks. Nil selects the defaults.
	CandidatePaths []string

	// Checker overrides the workspace access checker. Nil selects a
	// StatChecker with CheckTimeout.
	Checker failure.Checker

	// CheckTimeout bounds each workspace access check when the default
	// checker is used. Zero selects failure.DefaultCheckTimeout.
	CheckTimeout time.Duration

	// SkipLiveChecks disables workspace access probing entirely.
	SkipLiveChecks bool

	// Logger receives progress events. Nil disables logging.
	Logger *slog.Logger
}

// ServerInfo is the per-server view in a Diagnosis. Env values are
// masked before they ever leave the engine.
type ServerInfo struct {
	Name      string            `json:"name"`
	Command   string            `json:"command"`
	Args      []string          `json:"args,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
	IsBuiltIn bool              `json:"isBuiltIn"`
	Category  classify.Category `json:"category,omitempty"`
}

// Summary is the boolean/count overview of a Diagnosis.
type Summary struct {
	TotalServers   int  `json:"totalServers"`
	BuiltInServers int  `json:"builtInServers"`
	CustomServers  int  `json:"customServers"`
	HasFilesystem  bool `json:"hasFilesystem"`
	HasContext7    bool `json:"hasContext7"`
	HasGitHub      bool `json:"hasGitHub"`
	TotalIssues    int  `json:"totalIssues"`
	CriticalIssues int  `json:"criticalIssues"`
	Healthy        bool `json:"healthy"`
}

// Diagnosis is the complete result of one run. Run never raises; every
// failure mode is encoded here.
type Diagnosis struct {
	Success         bool                       `json:"success"`
	Error           string                     `json:"error,omitempty"`
	FallbackMode    bool                       `json:"fallbackMode,omitempty"`
	ConfigPath      string                     `json:"configPath"`
	ProjectPath     string                     `json:"projectPath,omitempty"`
	Summary         Summary                    `json:"summary"`
	Servers         []ServerInfo               `json:"servers"`
	Analysis        *capability.Summary        `json:"analysis"`
	Validation      *classify.ValidationResult `json:"validation,omitempty"`
	Failures        []failure.Record           `json:"failures"`
	Troubleshooting *troubleshoot.Report       `json:"troubleshooting"`
	EdgeCases       *edgecase.Report           `json:"edgeCases,omitempty"`
}

// Blocking reports whether the diagnosis should block the caller: the run
// itself failed, or a critical/high failure was detected.
func (d *Diagnosis) Blocking() bool {
	if d == nil || !d.Success {
		return true
	}
	for _, rec := range d.Failures {
		if severity.Blocking(rec.Severity) {
			return true
		}
	}
	return false
}

// ValidationIssues returns the structural issues found on custom servers.
func (d *Diagnosis) ValidationIssues() []classify.Issue {
	if d == nil || d.Validation == nil {
		return nil
	}
	return d.Validation.Issues
}

// Healthy reports a clean run with no failures and no validation issues.
func (d *Diagnosis) Healthy() bool {
	return d != nil && d.Success && d.Summary.Healthy
}

// Run executes a full diagnostic pass. It never returns an error and
// never panics: an unexpected failure inside any stage degrades into a
// report that says so.
func Run(ctx context.Context, opts Options) (diag *Diagnosis) {
	defer func() {
		if r := recover(); r != nil {
			diag = degraded(opts, fmt.Errorf("diagnostic pass panicked: %v", r))
		}
	}()
	return run(ctx, opts)
}

func run(ctx context.Context, opts Options) *Diagnosis {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = paths.DefaultConfigPath()
		if configPath == "" {
			return degraded(opts, paths.ErrHomeDirNotFound)
		}
	}

	candidates := opts.CandidatePaths
	if candidates == nil {
		candidates = paths.CandidateConfigPaths()
	}
	var existing []string
	for _, p := range candidates {
		if edgecase.FileExists(p) {
			existing = append(existing, p)
		}
	}
	log.DebugContext(ctx, "resolved configuration paths",
		"configPath", configPath,
		"candidates", len(candidates),
		"existing", len(existing))

	load := mcpconfig.LoadFile(configPath)
	if load.Error != nil {
		log.WarnContext(ctx, "configuration load failed",
			"path", configPath,
			"kind", load.Error.Kind,
			"error", load.Error.Message)
	}

	validation := classify.ValidateOnlyCustom(load.Document)
	analysis := capability.Analyze(load.Document, opts.ProjectPath)

	var checker failure.Checker
	if !opts.SkipLiveChecks {
		checker = opts.Checker
		if checker == nil {
			checker = failure.StatChecker{Timeout: opts.CheckTimeout}
		}
	}

	failures := failure.Detect(ctx, failure.Params{
		Load:        load,
		Summary:     analysis,
		ProjectPath: opts.ProjectPath,
		ConfigPaths: existing,
	}, checker)
	log.InfoContext(ctx, "failure detection complete", "failures", len(failures))

	diag := &Diagnosis{
		Success:         true,
		ConfigPath:      configPath,
		ProjectPath:     opts.ProjectPath,
		Servers:         serverInfos(load.Document),
		Analysis:        analysis,
		Validation:      validation,
		Failures:        failures,
		Troubleshooting: troubleshoot.Generate(failures, opts.ProjectPath),
		EdgeCases:       edgecase.Detect(candidates, nil),
	}
	diag.Summary = summarize(diag, validation)
	return diag
}

// serverInfos builds the per-server view in sorted name order, masking
// env secrets on the way out.
func serverInfos(doc *mcpconfig.Document) []ServerInfo {
	infos := make([]ServerInfo, 0, len(doc.MCPServers))
	for _, name := range doc.ServerNames() {
		entry := doc.MCPServers[name]
		info := ServerInfo{Name: name}
		if entry != nil {
			info.Command = entry.Command
			info.Args = append([]string(nil), entry.Args...)
			info.Env = MaskSecrets(entry.Env)
		}
		c := classify.Classify(name)
		info.IsBuiltIn = c.IsBuiltIn
		info.Category = c.Category
		infos = append(infos, info)
	}
	return infos
}

func summarize(diag *Diagnosis, validation *classify.ValidationResult) Summary {
	s := Summary{
		TotalServers:  len(diag.Servers),
		HasFilesystem: diag.Analysis.HasFilesystem,
		HasContext7:   diag.Analysis.HasContext7,
		HasGitHub:     diag.Analysis.HasGitHub,
	}
	for _, info := range diag.Servers {
		if info.IsBuiltIn {
			s.BuiltInServers++
		} else {
			s.CustomServers++
		}
	}
	s.TotalIssues = len(diag.Failures)
	if validation != nil {
		s.TotalIssues += len(validation.Issues)
	}
	s.CriticalIssues = diag.Troubleshooting.CriticalIssues
	s.Healthy = s.TotalIssues == 0
	return s
}

// degraded builds the worst-case Diagnosis: a well-formed report stating
// that the setup could not be verified, with generic remediation.
func degraded(opts Options, err error) *Diagnosis {
	rec := failure.SystemFailure(err)
	diag := &Diagnosis{
		Success:         false,
		Error:           err.Error(),
		FallbackMode:    true,
		ConfigPath:      opts.ConfigPath,
		ProjectPath:     opts.ProjectPath,
		Servers:         []ServerInfo{},
		Analysis:        &capability.Summary{},
		Failures:        []failure.Record{rec},
		Troubleshooting: troubleshoot.Degraded(err),
	}
	diag.Summary = Summary{
		TotalIssues:    1,
		CriticalIssues: 1,
	}
	return diag
}
