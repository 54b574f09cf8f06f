package manifest

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"sort"

	"go.uber.org/zap"
)

// Default locations, relative to the working directory.
const (
	DefaultSourcePattern   = "./assets/geometry/objects/*"
	DefaultDestinationPath = "./assets/geometry/objects.json"
)

// Generator lists the entries matching a source pattern and writes them to a
// destination manifest.
type Generator struct {
	sourcePattern   string
	destinationPath string
	format          Format
	globber         Globber
	writer          FileWriter
	logger          *zap.Logger
	listLogger      *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithFormat sets the output byte layout.
func WithFormat(f Format) Option {
	return func(g *Generator) { g.format = f }
}

// WithGlobber replaces the directory listing strategy.
func WithGlobber(gl Globber) Option {
	return func(g *Generator) { g.globber = gl }
}

// WithWriter replaces the destination writer.
func WithWriter(w FileWriter) Option {
	return func(g *Generator) { g.writer = w }
}

// WithLogger attaches a logger. Generators log nothing by default.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithListLogger attaches a separate logger for source listing. Without it
// listing goes through the WithLogger logger.
func WithListLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.listLogger = l }
}

// NewGenerator creates a Generator for the given source pattern and
// destination path.
func NewGenerator(sourcePattern, destinationPath string, opts ...Option) *Generator {
	g := &Generator{
		sourcePattern:   sourcePattern,
		destinationPath: destinationPath,
		format:          FormatCompact,
		globber:         DirGlobber{},
		writer:          AtomicWriter{},
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.listLogger == nil {
		g.listLogger = g.logger
	}
	return g
}

// SourcePattern returns the glob pattern the generator lists.
func (g *Generator) SourcePattern() string { return g.sourcePattern }

// DestinationPath returns the manifest path the generator writes.
func (g *Generator) DestinationPath() string { return g.destinationPath }

// Collect resolves the source pattern without writing anything.
func (g *Generator) Collect() (*Manifest, error) {
	urls, err := g.globber.Glob(g.sourcePattern)
	if err != nil {
		g.listLogger.Debug("source listing failed",
			zap.String("pattern", g.sourcePattern), zap.Error(err))
		return nil, err
	}
	g.listLogger.Debug("source listed",
		zap.String("pattern", g.sourcePattern), zap.Int("matches", len(urls)))
	return New(urls), nil
}

// Generate lists the source, encodes the manifest and replaces the
// destination file. The destination is not touched when listing fails.
func (g *Generator) Generate() (*Manifest, error) {
	m, err := g.Collect()
	if err != nil {
		return nil, err
	}

	data, err := Encode(m, g.format)
	if err != nil {
		return nil, err
	}

	if err := g.writer.WriteFile(g.destinationPath, data); err != nil {
		g.logger.Debug("manifest write failed",
			zap.String("destination", g.destinationPath), zap.Error(err))
		return nil, err
	}

	g.logger.Info("manifest written",
		zap.String("destination", g.destinationPath),
		zap.Int("urls", len(m.URLs)),
		zap.Int("bytes", len(data)))
	return m, nil
}

// Generate writes the manifest for sourcePattern to destinationPath using
// the default listing, compact format and atomic writer.
func Generate(sourcePattern, destinationPath string) (*Manifest, error) {
	return NewGenerator(sourcePattern, destinationPath).Generate()
}

// CheckResult compares the manifest on disk with a fresh listing.
type CheckResult struct {
	Destination string
	Exists      bool
	// Invalid is set when the destination exists but is not a manifest.
	Invalid  bool
	UpToDate bool
	Expected *Manifest
	Added    []string
	Removed  []string
}

// Check regenerates the manifest in memory and compares it byte for byte with
// the destination file. Nothing is written.
func (g *Generator) Check() (*CheckResult, error) {
	expected, err := g.Collect()
	if err != nil {
		return nil, err
	}
	want, err := Encode(expected, g.format)
	if err != nil {
		return nil, err
	}

	res := &CheckResult{Destination: g.destinationPath, Expected: expected}

	got, err := os.ReadFile(g.destinationPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			res.Added = append([]string(nil), expected.URLs...)
			return res, nil
		}
		return nil, &FileSystemError{Op: OpRead, Path: g.destinationPath, Err: err}
	}
	res.Exists = true
	res.UpToDate = bytes.Equal(got, want)

	current, err := Decode(got)
	if err != nil {
		res.Invalid = true
		res.Added = append([]string(nil), expected.URLs...)
		return res, nil
	}
	res.Added, res.Removed = diffPaths(current.URLs, expected.URLs)
	return res, nil
}

// diffPaths returns the paths only in next and only in prev, each sorted.
func diffPaths(prev, next []string) (added, removed []string) {
	seen := make(map[string]struct{}, len(prev))
	for _, p := range prev {
		seen[p] = struct{}{}
	}
	want := make(map[string]struct{}, len(next))
	for _, p := range next {
		want[p] = struct{}{}
		if _, ok := seen[p]; !ok {
			added = append(added, p)
		}
	}
	for _, p := range prev {
		if _, ok := want[p]; !ok {
			removed = append(removed, p)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}
