package finder

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/sync/errgroup"

	"github.com/gruntwork-io/filefinder/internal/errors"
	"github.com/gruntwork-io/filefinder/pattern"
	"github.com/gruntwork-io/filefinder/pkg/log"
)

const (
	// defaultNumWorkers bounds how many scan combinations run concurrently.
	defaultNumWorkers = 4
	// maxNumWorkers caps WithNumWorkers.
	maxNumWorkers = 32
	// defaultMaxEnumeratedScans bounds how many filter-value combinations are
	// expanded into separate scans before falling back to one wildcard scan.
	defaultMaxEnumeratedScans = 32
)

// Finder pairs a compiled path-level pattern with a file-level pattern and
// answers discovery queries against the filesystem. A Finder is immutable
// after construction and safe to share between queries; each query owns its
// Result.
type Finder struct {
	pathPattern *pattern.Pattern
	filePattern *pattern.Pattern
	fullPattern *pattern.Pattern
	logger      log.Logger
	numWorkers  int
	maxScans    int
}

// New compiles the given path and file templates into a Finder. Placeholder
// names may recur across the two templates; both occurrences must then parse
// to the same value for an entry to match.
func New(pathTemplate, fileTemplate string) (*Finder, error) {
	if pathTemplate == "" {
		return nil, pattern.NewSyntaxError("path template must not be empty", pathTemplate, 0)
	}

	if fileTemplate == "" {
		return nil, pattern.NewSyntaxError("file template must not be empty", fileTemplate, 0)
	}

	// Path templates conventionally end in a separator; candidates never do.
	if len(pathTemplate) > 1 {
		pathTemplate = strings.TrimSuffix(pathTemplate, "/")
	}

	pathPattern, err := pattern.Compile(pathTemplate)
	if err != nil {
		return nil, err
	}

	filePattern, err := pattern.Compile(fileTemplate)
	if err != nil {
		return nil, err
	}

	if strings.Contains(fileTemplate, "/") {
		return nil, pattern.NewSyntaxError("file template must not contain a directory separator", fileTemplate, strings.IndexByte(fileTemplate, '/'))
	}

	fullPattern, err := pathPattern.Join(filePattern)
	if err != nil {
		return nil, err
	}

	return &Finder{
		pathPattern: pathPattern,
		filePattern: filePattern,
		fullPattern: fullPattern,
		logger:      log.Default(),
		numWorkers:  defaultNumWorkers,
		maxScans:    defaultMaxEnumeratedScans,
	}, nil
}

// Keys returns all placeholder names, path-level first, in declaration order.
func (f *Finder) Keys() []string {
	return f.fullPattern.Keys()
}

// PathKeys returns the placeholder names of the path-level template.
func (f *Finder) PathKeys() []string {
	return f.pathPattern.Keys()
}

// FileKeys returns the placeholder names of the file-level template.
func (f *Finder) FileKeys() []string {
	return f.filePattern.Keys()
}

// FormatPath substitutes a complete value mapping into the path template.
func (f *Finder) FormatPath(values pattern.Values) (string, error) {
	return f.pathPattern.Format(values)
}

// FormatFile substitutes a complete value mapping into the file template.
func (f *Finder) FormatFile(values pattern.Values) (string, error) {
	return f.filePattern.Format(values)
}

// FormatFull substitutes a complete value mapping into the joined template,
// producing the full name of one concrete file.
func (f *Finder) FormatFull(values pattern.Values) (string, error) {
	return f.fullPattern.Format(values)
}

// FindPaths scans for directories matching the path-level template, one row
// per distinct resolved prefix. Only path-level placeholders are bound in the
// returned rows; file-level placeholders stay unresolved until a FindFiles
// call commits to the full scan. Filters may only name path-level
// placeholders.
func (f *Finder) FindPaths(ctx context.Context, filters Filters) (*Result, error) {
	return f.find(ctx, "paths", f.pathPattern, filters, true)
}

// FindFiles scans for files matching both template levels, one row per fully
// matched file with every placeholder bound. Entries whose path-level and
// file-level occurrences of a shared placeholder disagree are dropped with a
// warning.
func (f *Finder) FindFiles(ctx context.Context, filters Filters) (*Result, error) {
	return f.find(ctx, "files", f.fullPattern, filters, false)
}

// find runs the compile → scan → match → filter → aggregate pipeline for one
// query.
func (f *Finder) find(ctx context.Context, what string, pat *pattern.Pattern, filters Filters, dirsOnly bool) (*Result, error) {
	if err := filters.validate(pat.Keys()); err != nil {
		return nil, err
	}

	// The working directory anchoring relative templates is captured once per
	// query so a chdir elsewhere in the process cannot skew a scan midway.
	workDir, err := os.Getwd()
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	specOf := func(name string) (pattern.Spec, bool) { return pat.Spec(name) }
	combos := filters.combinations(specOf, f.maxScans)

	branches := make([]*scanBranch, len(combos))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(f.numWorkers)

	for i, combo := range combos {
		branch := &scanBranch{}
		branches[i] = branch

		group.Go(func() error {
			plan := pat.ScanPlan(combo)

			f.logger.Debugf("looking for %s with pattern: %q", what, plan)

			scan := &scanner{
				workDir:  workDir,
				dirsOnly: dirsOnly,
				warn:     branch.warn,
			}

			return scan.run(groupCtx, plan, func(candidate string) bool {
				branch.candidates = append(branch.candidates, candidate)
				return true
			})
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := newResult(pat.Keys(), specOf)
	claimed := xsync.NewMapOf[string, struct{}]()

	for _, branch := range branches {
		for _, warning := range branch.warnings {
			result.warn(warning)
		}

		for _, candidate := range branch.candidates {
			// Overlapping combinations can surface the same path in more than
			// one branch; merging in combination order lets the earliest
			// combination claim it, keeping row positions stable across runs.
			if _, dup := claimed.LoadOrStore(candidate, struct{}{}); dup {
				continue
			}

			values, ok, err := pat.Match(candidate)
			if err != nil {
				result.warn(err)
				continue
			}

			// A glob hit the compiled matcher rejects (for example a numeric
			// placeholder over non-digit text) is a plain miss.
			if !ok || !filters.matches(values, specOf) {
				continue
			}

			result.append(Entry{Path: candidate, Values: values})
		}
	}

	f.logger.Debugf("found %d %s", result.Len(), what)

	return result, nil
}

// String returns a human-readable description of the finder.
func (f *Finder) String() string {
	return fmt.Sprintf("<Finder>\npath pattern: %q\nfile pattern: %q\nkeys: %s\n",
		f.pathPattern, f.filePattern, strings.Join(f.Keys(), ", "))
}

// scanBranch collects the output of one scan combination. A branch is only
// touched by its own goroutine until the group is done, so it needs no
// synchronization of its own.
type scanBranch struct {
	candidates []string
	warnings   []error
}

func (b *scanBranch) warn(err error) {
	b.warnings = append(b.warnings, err)
}
