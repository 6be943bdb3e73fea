package finder_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gruntwork-io/filefinder/finder"
	"github.com/gruntwork-io/filefinder/pattern"
)

// newTestTree lays out a small archive of category directories:
//
//	root/
//	  a1/
//	    a1_file_1
//	    a1_file_2
//	    a1_file_10
//	    a2_file_9   (path and file level disagree on the category)
//	    README      (does not match the file template)
//	  a2/
//	    a2_file_1
//	  stray        (a plain file at category level)
func newTestTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()

	files := []string{
		"a1/a1_file_1",
		"a1/a1_file_2",
		"a1/a1_file_10",
		"a1/a2_file_9",
		"a1/README",
		"a2/a2_file_1",
	}

	for _, name := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	}

	require.NoError(t, os.WriteFile(filepath.Join(root, "stray"), []byte("data"), 0o644))

	return root
}

func newTestFinder(t *testing.T, root string) *finder.Finder {
	t.Helper()

	f, err := finder.New(root+"/{category}/", "{category}_file_{number:d}")
	require.NoError(t, err)

	return f
}

func TestFinder_FindFiles(t *testing.T) {
	t.Parallel()

	root := newTestTree(t)
	f := newTestFinder(t, root)

	res, err := f.FindFiles(context.Background(), nil)
	require.NoError(t, err)

	// README never matches, a2_file_9 is dropped for its conflicting category,
	// and the surviving rows of each directory come back in natural order.
	assert.Equal(t, []string{
		filepath.Join(root, "a1", "a1_file_1"),
		filepath.Join(root, "a1", "a1_file_2"),
		filepath.Join(root, "a1", "a1_file_10"),
		filepath.Join(root, "a2", "a2_file_1"),
	}, res.Paths())

	first := res.At(0)
	assert.Equal(t, pattern.Values{
		"category": pattern.String("a1"),
		"number":   pattern.Int(1),
	}, first.Values)

	require.Len(t, res.Warnings(), 1)

	var ambiguousErr pattern.AmbiguousBindingError
	require.ErrorAs(t, res.Warnings()[0], &ambiguousErr)
	assert.Equal(t, "category", ambiguousErr.Key)
	assert.ElementsMatch(t, []string{"a1", "a2"}, ambiguousErr.Values)
}

func TestFinder_FindFilesFiltered(t *testing.T) {
	t.Parallel()

	root := newTestTree(t)
	f := newTestFinder(t, root)

	res, err := f.FindFiles(context.Background(), finder.Filters{
		"category": finder.Eq("a1"),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Len())

	res, err = f.FindFiles(context.Background(), finder.Filters{
		"number": finder.EqInt(10),
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Len())
	assert.Equal(t, filepath.Join(root, "a1", "a1_file_10"), res.At(0).Path)

	res, err = f.FindFiles(context.Background(), finder.Filters{
		"category": finder.Eq("a*"),
		"number":   finder.InInts(1),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Len())
}

func TestFinder_FindFilesOverlappingFilterValues(t *testing.T) {
	t.Parallel()

	root := newTestTree(t)
	f := newTestFinder(t, root)

	// Repeated filter values expand to overlapping scans; the result table
	// still carries each file once, in the order of the first scan that
	// surfaced it.
	res, err := f.FindFiles(context.Background(), finder.Filters{
		"category": finder.In("a1", "a1"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a1", "a1_file_1"),
		filepath.Join(root, "a1", "a1_file_2"),
		filepath.Join(root, "a1", "a1_file_10"),
	}, res.Paths())
}

func TestFinder_UnreadableDirWarns(t *testing.T) {
	t.Parallel()

	if os.Getuid() == 0 {
		t.Skip("directory permissions do not restrict root")
	}

	root := t.TempDir()

	for _, name := range []string{"a1/a1_file_1", "a2/a2_file_1"} {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	}

	locked := filepath.Join(root, "a2")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() {
		_ = os.Chmod(locked, 0o755)
	})

	f := newTestFinder(t, root)

	res, err := f.FindFiles(context.Background(), nil)
	require.NoError(t, err)

	// The readable directory's rows survive; the unreadable one degrades to a
	// warning that keeps its cause.
	assert.Equal(t, []string{
		filepath.Join(root, "a1", "a1_file_1"),
	}, res.Paths())

	require.Len(t, res.Warnings(), 1)

	var warning finder.ScanWarning
	require.ErrorAs(t, res.Warnings()[0], &warning)
	assert.Equal(t, locked, warning.Path)
	require.Error(t, warning.Cause)
	assert.ErrorIs(t, warning.Cause, os.ErrPermission)
}

func TestFinder_FindPaths(t *testing.T) {
	t.Parallel()

	root := newTestTree(t)
	f := newTestFinder(t, root)

	res, err := f.FindPaths(context.Background(), nil)
	require.NoError(t, err)

	// Only directories count at path level; the stray file is skipped.
	assert.Equal(t, []string{
		filepath.Join(root, "a1"),
		filepath.Join(root, "a2"),
	}, res.Paths())

	// Path rows only bind path-level placeholders.
	assert.Equal(t, pattern.Values{"category": pattern.String("a1")}, res.At(0).Values)
}

func TestFinder_FindPathsRejectsFileLevelKeys(t *testing.T) {
	t.Parallel()

	root := newTestTree(t)
	f := newTestFinder(t, root)

	_, err := f.FindPaths(context.Background(), finder.Filters{
		"number": finder.EqInt(1),
	})
	require.Error(t, err)

	var unknownErr finder.UnknownKeyError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, []string{"number"}, unknownErr.Keys)
}

func TestFinder_UnknownFilterKey(t *testing.T) {
	t.Parallel()

	root := newTestTree(t)
	f := newTestFinder(t, root)

	_, err := f.FindFiles(context.Background(), finder.Filters{
		"bogus": finder.Eq("x"),
	})
	require.Error(t, err)

	var unknownErr finder.UnknownKeyError
	assert.ErrorAs(t, err, &unknownErr)
}

func TestFinder_MissingRootWarns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	f, err := finder.New(root+"/nowhere/{category}/", "{category}_file_{number:d}")
	require.NoError(t, err)

	res, err := f.FindFiles(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Len())

	require.Len(t, res.Warnings(), 1)

	var warning finder.ScanWarning
	assert.ErrorAs(t, res.Warnings()[0], &warning)
}

func TestFinder_CancelledContext(t *testing.T) {
	t.Parallel()

	root := newTestTree(t)
	f := newTestFinder(t, root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.FindFiles(ctx, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFinder_RepeatedQueries(t *testing.T) {
	t.Parallel()

	root := newTestTree(t)
	f := newTestFinder(t, root)

	res, err := f.FindFiles(context.Background(), nil)
	require.NoError(t, err)

	// Every query re-lists the tree, so new files show up on the next call.
	path := filepath.Join(root, "a2", "a2_file_2")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))

	again, err := f.FindFiles(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, res.Len()+1, again.Len())
}

func TestFinder_Format(t *testing.T) {
	t.Parallel()

	f, err := finder.New("/data/{category}/", "{category}_file_{number:2d}")
	require.NoError(t, err)

	values := pattern.Values{
		"category": pattern.String("a1"),
		"number":   pattern.Int(7),
	}

	full, err := f.FormatFull(values)
	require.NoError(t, err)
	assert.Equal(t, "/data/a1/a1_file_07", full)

	dir, err := f.FormatPath(values)
	require.NoError(t, err)
	assert.Equal(t, "/data/a1", dir)

	_, err = f.FormatFile(pattern.Values{"category": pattern.String("a1")})
	require.Error(t, err)

	var missingErr pattern.MissingValueError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, []string{"number"}, missingErr.Keys)
}

func TestFinder_NewRejectsBadTemplates(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		pathTemplate string
		fileTemplate string
	}{
		{name: "empty path template", pathTemplate: "", fileTemplate: "{a}"},
		{name: "empty file template", pathTemplate: "/data/{a}/", fileTemplate: ""},
		{name: "separator in file template", pathTemplate: "/data/{a}/", fileTemplate: "sub/{a}"},
		{name: "unbalanced brace", pathTemplate: "/data/{a/", fileTemplate: "{b}"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := finder.New(tc.pathTemplate, tc.fileTemplate)
			assert.Error(t, err)
		})
	}
}

func TestFinder_Options(t *testing.T) {
	t.Parallel()

	root := newTestTree(t)

	f, err := finder.New(root+"/{category}/", "{category}_file_{number:d}")
	require.NoError(t, err)

	f = f.WithNumWorkers(2).WithMaxEnumeratedScans(1)

	// With the enumeration budget exhausted, multi-valued constraints fall
	// back to a single wildcard scan; the result is the same.
	res, err := f.FindFiles(context.Background(), finder.Filters{
		"category": finder.In("a1", "a2"),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Len())
}
