package sitepress

import "fmt"

// FileError reports a filesystem failure, naming the offending path.
type FileError struct {
	Op   string // "read", "write", "copy", "delete", "create", "open", "rename"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// ParseError reports a malformed source: broken frontmatter or Markdown the
// renderer cannot process.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// PolicyError reports a refused operation: an invalid build target, a
// missing deploy script, or a site-handle precondition violation. The reason
// is user-facing.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string { return e.Reason }

// DeployError reports a deploy script that could not be spawned or exited
// non-zero. Output carries whatever the script produced before failing.
type DeployError struct {
	Output string
	Err    error
}

func (e *DeployError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("deploy script failed: %v\n%s", e.Err, e.Output)
	}
	return fmt.Sprintf("deploy script failed: %v", e.Err)
}

func (e *DeployError) Unwrap() error { return e.Err }

// ErrNoDeployScript is returned by BuildAndDeploy when the site has no
// deploy script. Creating one at DeployScriptPath fixes it.
var ErrNoDeployScript = &PolicyError{
	Reason: "no deploy script at " + DeployScriptPath + "; create one to enable deploys",
}
