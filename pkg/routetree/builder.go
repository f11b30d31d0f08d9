package routetree

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vango-dev/apiroutes/pkg/routetree"

// Stats summarizes a scan.
type Stats struct {
	// Directories is the number of directories listed, including the root.
	Directories int

	// Endpoints is the number of endpoint directories found.
	Endpoints int

	// MaxDepth is the deepest directory level listed (root = 0).
	MaxDepth int

	// Skipped counts directories not descended into because they matched
	// an ignore pattern or would close a symlink cycle.
	Skipped int
}

// Builder scans a directory and builds the route tree.
type Builder struct {
	markers        []string
	prefix         string
	ignore         []string
	followSymlinks bool
	logger         *slog.Logger
	tracer         trace.Tracer
}

// Option configures a Builder.
type Option func(*Builder)

// WithMarkers sets the marker file names. Empty names are ignored; with no
// names left the default marker is kept.
func WithMarkers(names ...string) Option {
	return func(b *Builder) {
		markers := slices.DeleteFunc(slices.Clone(names), func(s string) bool { return s == "" })
		if len(markers) > 0 {
			b.markers = markers
		}
	}
}

// WithPrefix sets the URL prefix for endpoint paths.
func WithPrefix(prefix string) Option {
	return func(b *Builder) {
		b.prefix = prefix
	}
}

// WithIgnore sets directory-name patterns (filepath.Match syntax) that are
// never descended into.
func WithIgnore(patterns ...string) Option {
	return func(b *Builder) {
		b.ignore = slices.Clone(patterns)
	}
}

// WithFollowSymlinks controls whether symlinks to directories are scanned.
func WithFollowSymlinks(follow bool) Option {
	return func(b *Builder) {
		b.followSymlinks = follow
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithTracer sets the tracer. Default: the global OpenTelemetry provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(b *Builder) {
		b.tracer = tracer
	}
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		markers:        []string{DefaultMarker},
		prefix:         DefaultPrefix,
		followSymlinks: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	if b.tracer == nil {
		b.tracer = otel.Tracer(tracerName)
	}
	return b
}

// Build scans rootDir and returns the route tree.
//
// The root node never carries a path. If rootDir or any directory below it
// cannot be listed, or a directory name is not valid UTF-8, Build returns an
// error matching ErrDirectoryUnreadable and no tree.
func (b *Builder) Build(ctx context.Context, rootDir string) (*Node, Stats, error) {
	ctx, span := b.tracer.Start(ctx, "routetree.Build",
		trace.WithAttributes(attribute.String("routetree.root", rootDir)))
	defer span.End()

	s := &scan{builder: b, ctx: ctx}
	root, err := s.dir(rootDir, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, s.stats, err
	}

	span.SetAttributes(
		attribute.Int("routetree.directories", s.stats.Directories),
		attribute.Int("routetree.endpoints", s.stats.Endpoints),
		attribute.Int("routetree.max_depth", s.stats.MaxDepth),
	)
	return root, s.stats, nil
}

// scan holds the state of one Build call.
type scan struct {
	builder *Builder
	ctx     context.Context
	stats   Stats

	// active holds the resolved paths of the directories being visited,
	// root first.
	active []string
}

func (s *scan) dir(dir string, segments []string) (*Node, error) {
	if err := s.ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DirectoryError{Path: dir, Err: err}
	}

	s.stats.Directories++
	s.stats.MaxDepth = max(s.stats.MaxDepth, len(segments))

	s.active = append(s.active, resolve(dir))
	defer func() { s.active = s.active[:len(s.active)-1] }()

	node := &Node{}
	if len(segments) > 0 && s.hasMarker(entries) {
		node.Path = JoinURL(append([]string{s.builder.prefix}, segments...)...)
		s.stats.Endpoints++
		s.builder.logger.Debug("endpoint found", "path", node.Path, "dir", dir)
	}

	for _, entry := range entries {
		name := entry.Name()
		childDir := filepath.Join(dir, name)

		if !s.isDir(childDir, entry) {
			continue
		}
		if s.builder.ignored(name) {
			s.stats.Skipped++
			s.builder.logger.Debug("directory ignored", "dir", childDir)
			continue
		}
		if !utf8.ValidString(name) {
			return nil, &DirectoryError{Path: childDir, Err: ErrInvalidName}
		}
		if entry.Type()&fs.ModeSymlink != 0 && slices.Contains(s.active, resolve(childDir)) {
			s.stats.Skipped++
			s.builder.logger.Debug("symlink cycle skipped", "dir", childDir)
			continue
		}

		child, err := s.dir(childDir, append(slices.Clip(segments), name))
		if err != nil {
			return nil, err
		}
		if child.IsEmpty() {
			continue
		}
		child.Segment = name
		node.Children = append(node.Children, child)
	}

	return node, nil
}

// hasMarker reports whether entries contain a marker file.
func (s *scan) hasMarker(entries []os.DirEntry) bool {
	for _, entry := range entries {
		if !entry.IsDir() && IsMarkerFile(entry.Name(), s.builder.markers) {
			return true
		}
	}
	return false
}

// isDir reports whether entry should be scanned as a directory. Symlinks
// count when following is enabled and the target is a directory; dangling
// links are not directories.
func (s *scan) isDir(path string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 || !s.builder.followSymlinks {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ignored reports whether a directory name matches an ignore pattern.
func (b *Builder) ignored(name string) bool {
	for _, pattern := range b.ignore {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// resolve returns the symlink-free absolute form of path, falling back to
// the cleaned path when it cannot be resolved.
func resolve(path string) string {
	if real, err := filepath.EvalSymlinks(path); err == nil {
		path = real
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
