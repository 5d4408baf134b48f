package failure

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/thoreinstein/mcpdoctor/internal/errors"
	"github.com/thoreinstein/mcpdoctor/internal/severity"
)

// DefaultCheckTimeout bounds a single workspace access check. A check
// that outlives it is treated exactly like a permission denial; a hanging
// network mount must not hang the diagnosis.
const DefaultCheckTimeout = 2 * time.Second

// ErrCheckTimeout is returned by checkers whose access probe timed out.
var ErrCheckTimeout = errors.New("workspace access check timed out")

// Checker probes whether a workspace path is accessible. Implementations
// must honor ctx and return within a bounded time.
type Checker interface {
	Access(ctx context.Context, path string) error
}

// StatChecker probes paths with os.Stat under a per-check timeout.
type StatChecker struct {
	// Timeout per check; zero means DefaultCheckTimeout.
	Timeout time.Duration
}

func (c StatChecker) Access(ctx context.Context, path string) error {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := os.Stat(path)
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ErrCheckTimeout
	}
}

// checkWorkspaceAccess probes every workspace path concurrently and waits
// for all probes before returning. Results keep WorkspacePaths order. A
// probe that panics or fails in an unrecognized way yields a "could not
// verify" record, never an escaped panic.
func checkWorkspaceAccess(ctx context.Context, workspacePaths []string, checker Checker) []Record {
	if checker == nil || len(workspacePaths) == 0 {
		return nil
	}

	outcomes := make([]error, len(workspacePaths))
	var wg sync.WaitGroup
	for i, path := range workspacePaths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					outcomes[i] = fmt.Errorf("access check panicked: %v", r)
				}
			}()
			outcomes[i] = checker.Access(ctx, path)
		}(i, path)
	}
	wg.Wait()

	var records []Record
	for i, err := range outcomes {
		rec := accessRecord(workspacePaths[i], err)
		if rec != nil {
			records = append(records, *rec)
		}
	}
	return records
}

// accessRecord maps one probe outcome to a record. Timeouts are treated
// identically to permission denial. A path that simply does not exist is
// already covered by the coverage rules and produces nothing here.
func accessRecord(path string, err error) *Record {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case errors.Is(err, fs.ErrPermission), errors.Is(err, ErrCheckTimeout),
		errors.Is(err, context.DeadlineExceeded):
		return &Record{
			Type:         TypeWorkspacePermissionDenied,
			Title:        "Workspace path is not accessible",
			Description:  fmt.Sprintf("The workspace path %s is configured but could not be accessed: %s.", path, err),
			Severity:     severity.Critical,
			AutoDetected: true,
			Context: map[string]string{
				"path":  path,
				"error": err.Error(),
			},
			Resolution: []string{
				fmt.Sprintf("Check the permissions on %s for the user running Claude Desktop", path),
				"If the path is on a network mount, verify the mount is healthy",
				"Restart Claude Desktop after fixing access",
			},
			AutoFixable: false,
		}
	default:
		return &Record{
			Type:         TypeWorkspaceCheckUnverified,
			Title:        "Workspace path could not be verified",
			Description:  fmt.Sprintf("Accessibility of %s could not be verified: %s.", path, err),
			Severity:     severity.Warning,
			AutoDetected: true,
			Context: map[string]string{
				"path":  path,
				"error": err.Error(),
			},
			Resolution: []string{
				fmt.Sprintf("Manually confirm that %s exists and is readable", path),
				"Run the diagnosis again",
			},
			AutoFixable: false,
		}
	}
}
