package finder

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"github.com/gruntwork-io/filefinder/internal/errors"
	"github.com/gruntwork-io/filefinder/internal/util"
	"github.com/gruntwork-io/filefinder/pattern"
)

// scanner expands one scan plan into candidate paths. Each run re-lists the
// directory tree, so a scan is restartable and never carries cached state
// between queries. Traversal is depth-first with directory entries visited in
// natural sort order, which keeps candidate order reproducible.
type scanner struct {
	// workDir resolves relative plans. It is captured once per query, not
	// re-read mid-scan.
	workDir string
	// dirsOnly restricts final candidates to directories (path-level scans).
	dirsOnly bool
	// warn records a non-fatal scan problem.
	warn func(error)
}

// run enumerates all candidates of the plan, invoking emit for each. emit
// returning false stops the scan early. The only returned error is a
// cancelled context, checked between directory-listing calls.
func (s *scanner) run(ctx context.Context, plan pattern.ScanPlan, emit func(string) bool) error {
	if len(plan.Segments) == 0 {
		return nil
	}

	_, err := s.walk(ctx, plan, 0, "", emit)

	return err
}

// walk expands the segment at idx under the already-resolved prefix rel.
func (s *scanner) walk(ctx context.Context, plan pattern.ScanPlan, idx int, rel string, emit func(string) bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, errors.WithStackTrace(err)
	}

	seg := plan.Segments[idx]
	last := idx == len(plan.Segments)-1

	if seg.IsLiteral() {
		return s.walkLiteral(ctx, plan, seg, idx, rel, last, emit)
	}

	matcher, err := glob.Compile(seg.GlobString())
	if err != nil {
		s.warn(errors.New(ScanWarning{Path: s.displayPath(plan, rel), Cause: err}))
		return true, nil
	}

	entries, err := os.ReadDir(s.fsPath(plan, rel))
	if err != nil {
		s.recordPathProblem(plan, rel, err)
		return true, nil
	}

	names := make([]string, 0, len(entries))
	children := make(map[string]fs.DirEntry, len(entries))

	for _, entry := range entries {
		if matcher.Match(entry.Name()) {
			names = append(names, entry.Name())
			children[entry.Name()] = entry
		}
	}

	util.SortNatural(names)

	for _, name := range names {
		entry := children[name]
		next := util.JoinPath(rel, name)

		if last {
			if s.dirsOnly && !s.isDir(plan, next, entry) {
				continue
			}

			if !emit(s.displayPath(plan, next)) {
				return false, nil
			}

			continue
		}

		if !s.isDir(plan, next, entry) {
			continue
		}

		cont, err := s.walk(ctx, plan, idx+1, next, emit)
		if err != nil || !cont {
			return cont, err
		}
	}

	return true, nil
}

// walkLiteral handles a segment with no wildcards: the fragment either exists
// verbatim or the branch dies with a warning.
func (s *scanner) walkLiteral(ctx context.Context, plan pattern.ScanPlan, seg pattern.ScanSegment, idx int, rel string, last bool, emit func(string) bool) (bool, error) {
	next := util.JoinPath(rel, seg.LiteralText())

	info, err := os.Stat(s.fsPath(plan, next))
	if err != nil {
		s.recordPathProblem(plan, next, err)
		return true, nil
	}

	if last {
		if s.dirsOnly && !info.IsDir() {
			return true, nil
		}

		return emit(s.displayPath(plan, next)), nil
	}

	if !info.IsDir() {
		return true, nil
	}

	return s.walk(ctx, plan, idx+1, next, emit)
}

// isDir resolves whether a candidate is a directory, following symlinks.
func (s *scanner) isDir(plan pattern.ScanPlan, rel string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}

	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}

	info, err := os.Stat(s.fsPath(plan, rel))

	return err == nil && info.IsDir()
}

// recordPathProblem turns a stat/list failure into a scan warning. A missing
// path is recorded without a cause; anything else (most commonly a permission
// error) keeps its cause.
func (s *scanner) recordPathProblem(plan pattern.ScanPlan, rel string, err error) {
	warning := ScanWarning{Path: s.displayPath(plan, rel)}
	if !errors.Is(err, fs.ErrNotExist) {
		warning.Cause = err
	}

	s.warn(errors.New(warning))
}

// fsPath returns the on-disk path for a resolved prefix.
func (s *scanner) fsPath(plan pattern.ScanPlan, rel string) string {
	if plan.Absolute {
		return "/" + rel
	}

	if rel == "" {
		return s.workDir
	}

	return filepath.Join(s.workDir, filepath.FromSlash(rel))
}

// displayPath returns the candidate path the way the template spells it, so
// that matching a candidate against the compiled pattern consumes the whole
// string.
func (s *scanner) displayPath(plan pattern.ScanPlan, rel string) string {
	if plan.Absolute {
		return "/" + rel
	}

	return rel
}
