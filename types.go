// Package sitepress compiles a tree of Markdown and HTML sources into a
// deployable static site, serves a live preview while editing, and runs an
// asynchronous build-and-deploy pipeline.
//
// A Site handle owns one source root. The same classification rules decide
// what every path produces whether the caller is doing a full build or
// answering a single preview request; see Resolve and ResolvePreview.
package sitepress

// OutputKind tags a RenderOutput.
type OutputKind int

const (
	// KindNone produces nothing: the path is absent from build output and
	// the preview server answers 404.
	KindNone OutputKind = iota
	// KindRendered is HTML content destined for a file.
	KindRendered
	// KindHidden is rendered content the preview server will serve but a
	// build never writes to disk.
	KindHidden
	// KindRaw copies the source bytes verbatim.
	KindRaw
	// KindDir creates an empty directory in the build output.
	KindDir
)

// RenderOutput is the verdict for one source path. Path is relative to the
// build target and uses forward slashes; for KindRendered and KindHidden it
// always carries a .html extension regardless of the source extension.
type RenderOutput struct {
	Kind    OutputKind
	Path    string
	Content []byte // set for KindRendered and KindHidden only
}

// TreeEntryKind tags a TreeEntry.
type TreeEntryKind int

const (
	TreeFile TreeEntryKind = iota
	TreeDirOpen
	// TreeDirClose is a sentinel closing the most recent unclosed TreeDirOpen.
	// It carries no path.
	TreeDirClose
)

// TreeEntry is one element of the depth-first site listing used for
// navigation. A directory's TreeDirOpen precedes its children and its
// TreeDirClose follows them.
type TreeEntry struct {
	Kind TreeEntryKind
	Path string // relative to the site root; "." for the root itself
}

// FileType selects what CreatePage creates.
type FileType int

const (
	FileTypeFile FileType = iota
	FileTypeDir
)
