package sitepress

import (
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

// DeployScriptPath is the well-known deploy script location under the site
// root. The script runs with its working directory set to a freshly built
// scratch copy of the site; exit code 0 means success.
const DeployScriptPath = "_scripts/deploy.sh"

// DeployResult is the outcome of one background deploy. On success Output
// carries the script's captured stdout; on failure Err is set and Output
// carries whatever the script produced before failing.
type DeployResult struct {
	Output string
	Err    error
}

// DeployJob is the caller's handle on an in-flight BuildAndDeploy. The
// result is delivered exactly once through a single-slot channel; callers
// poll it on their own schedule and never block.
type DeployJob struct {
	result chan DeployResult
}

// Poll returns the result if the job has finished. It never blocks.
func (j *DeployJob) Poll() (DeployResult, bool) {
	select {
	case r := <-j.result:
		return r, true
	default:
		return DeployResult{}, false
	}
}

// Done exposes the one-shot result channel for callers that select on it.
func (j *DeployJob) Done() <-chan DeployResult { return j.result }

// BuildAndDeploy builds the site into a scratch directory and runs the
// deploy script there, all on a background goroutine. The scratch directory
// is removed before the result is reported, whether the build fails, the
// script is missing, the script fails, or everything succeeds.
//
// Callers must serialize deploys per site root; the pipeline itself does
// not guard against concurrent invocations.
func (s *Site) BuildAndDeploy() *DeployJob {
	job := &DeployJob{result: make(chan DeployResult, 1)}
	go func() {
		r := s.runDeploy()
		s.recordOutcome("deploy", r.Err, r.Output)
		job.result <- r
	}()
	return job
}

func (s *Site) runDeploy() DeployResult {
	scratch, err := os.MkdirTemp("", "sitepress-deploy-")
	if err != nil {
		return DeployResult{Err: &PolicyError{Reason: "cannot allocate scratch directory: " + err.Error()}}
	}
	// Cleanup is unconditional. A removal failure is reported but never
	// masks an earlier, more specific error.
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			slog.Warn("scratch directory not removed", "dir", scratch, "error", err)
		}
	}()

	slog.Info("deploy: building site", "scratch", scratch)
	if err := s.build(scratch); err != nil {
		return DeployResult{Err: err}
	}

	script := filepath.Join(s.Root, filepath.FromSlash(DeployScriptPath))
	if !fileExists(script) {
		return DeployResult{Err: ErrNoDeployScript}
	}

	slog.Info("deploy: running script", "script", DeployScriptPath)
	cmd := exec.Command(script)
	cmd.Dir = scratch
	out, err := cmd.Output()
	if err != nil {
		output := string(out)
		var exit *exec.ExitError
		if errors.As(err, &exit) {
			output += string(exit.Stderr)
		}
		return DeployResult{Output: output, Err: &DeployError{Output: output, Err: err}}
	}
	slog.Info("deploy: script finished")
	return DeployResult{Output: string(out)}
}
