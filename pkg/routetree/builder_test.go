package routetree

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
)

// mkTree creates files and directories under root. Entries ending in "/"
// are created as empty directories.
func mkTree(t *testing.T, root string, entries ...string) {
	t.Helper()
	for _, entry := range entries {
		path := filepath.Join(root, filepath.FromSlash(entry))
		if strings.HasSuffix(entry, "/") {
			if err := os.MkdirAll(path, 0755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("export async function GET() {}\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func build(t *testing.T, root string, opts ...Option) (*Node, Stats) {
	t.Helper()
	tree, stats, err := NewBuilder(opts...).Build(context.Background(), root)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return tree, stats
}

func TestBuildEmptyRoot(t *testing.T) {
	root := t.TempDir()

	tree, stats := build(t, root)

	if !tree.IsEmpty() {
		t.Errorf("tree = %+v, want empty", tree)
	}
	if stats.Directories != 1 || stats.Endpoints != 0 {
		t.Errorf("stats = %+v, want 1 directory and 0 endpoints", stats)
	}
}

func TestBuildSingleEndpoint(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "users/route.ts")

	tree, _ := build(t, root)

	want := &Node{Children: []*Node{
		{Segment: "users", Path: "/api/users"},
	}}
	if !reflect.DeepEqual(tree, want) {
		t.Errorf("tree = %+v, want %+v", tree, want)
	}
}

func TestBuildEndpointWithNestedEndpoint(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "users/route.ts", "users/[id]/route.ts")

	tree, stats := build(t, root)

	users := tree.Child("users")
	if users == nil {
		t.Fatal("users missing from tree")
	}
	if users.Path != "/api/users" {
		t.Errorf("users.Path = %q, want %q", users.Path, "/api/users")
	}
	id := users.Child("[id]")
	if id == nil {
		t.Fatal("users/[id] missing from tree")
	}
	if id.Path != "/api/users/[id]" {
		t.Errorf("[id].Path = %q, want %q", id.Path, "/api/users/[id]")
	}
	if stats.Endpoints != 2 {
		t.Errorf("stats.Endpoints = %d, want 2", stats.Endpoints)
	}
	if stats.MaxDepth != 2 {
		t.Errorf("stats.MaxDepth = %d, want 2", stats.MaxDepth)
	}
}

func TestBuildPrunesDirectoriesWithoutMarkers(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root,
		"internal/helpers/util.ts",
		"internal/deep/er/",
		"health/route.ts",
		"health/README.md",
		"types.ts",
	)

	tree, _ := build(t, root)

	if tree.Child("internal") != nil {
		t.Error("internal should be pruned")
	}
	if got := tree.Endpoints(); !reflect.DeepEqual(got, []string{"/api/health"}) {
		t.Errorf("Endpoints() = %v, want [/api/health]", got)
	}
}

func TestBuildIntermediateDirectoryWithoutMarker(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "v1/orders/[orderId]/items/route.ts")

	tree, _ := build(t, root)

	v1 := tree.Child("v1")
	if v1 == nil {
		t.Fatal("v1 missing from tree")
	}
	if v1.HasPath() {
		t.Errorf("v1.Path = %q, want empty", v1.Path)
	}
	items := tree.Lookup("v1", "orders", "[orderId]", "items")
	if items == nil {
		t.Fatal("v1/orders/[orderId]/items missing from tree")
	}
	if items.Path != "/api/v1/orders/[orderId]/items" {
		t.Errorf("items.Path = %q", items.Path)
	}
}

func TestBuildRootMarkerIsNotAnEndpoint(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "route.ts", "users/route.ts")

	tree, stats := build(t, root)

	if tree.HasPath() {
		t.Errorf("root.Path = %q, want empty", tree.Path)
	}
	if stats.Endpoints != 1 {
		t.Errorf("stats.Endpoints = %d, want 1", stats.Endpoints)
	}
}

func TestBuildMarkerDirectoryIsNotAMarker(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "users/route.ts/")

	tree, _ := build(t, root)

	if !tree.IsEmpty() {
		t.Errorf("tree = %+v, want empty", tree)
	}
}

func TestBuildCustomMarkersAndPrefix(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "users/route.js", "posts/route.ts", "legacy/index.ts")

	tree, _ := build(t, root,
		WithMarkers("route.js", "route.ts"),
		WithPrefix("/v2/api/"),
	)

	got := tree.Endpoints()
	want := []string{"/v2/api/posts", "/v2/api/users"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Endpoints() = %v, want %v", got, want)
	}
}

func TestBuildIgnorePatterns(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root,
		"users/route.ts",
		"_private/route.ts",
		"node_modules/pkg/route.ts",
	)

	tree, stats := build(t, root, WithIgnore("_*", "node_modules"))

	if got := tree.Endpoints(); !reflect.DeepEqual(got, []string{"/api/users"}) {
		t.Errorf("Endpoints() = %v, want [/api/users]", got)
	}
	if stats.Skipped != 2 {
		t.Errorf("stats.Skipped = %d, want 2", stats.Skipped)
	}
}

func TestBuildOrderFollowsDirectoryListing(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "zeta/route.ts", "alpha/route.ts", "Mid/route.ts")

	tree, _ := build(t, root)

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	var want []string
	for _, e := range entries {
		want = append(want, e.Name())
	}

	var got []string
	for _, child := range tree.Children {
		got = append(got, child.Segment)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("child order = %v, want %v", got, want)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root,
		"users/route.ts",
		"users/[id]/route.ts",
		"users/[id]/posts/route.ts",
		"auth/login/route.ts",
		"auth/logout/route.ts",
		"misc/readme.md",
	)

	first, _ := build(t, root)
	second, _ := build(t, root)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("builds differ:\n%+v\n%+v", first, second)
	}
}

func TestBuildPathsMirrorDirectories(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root,
		"a/route.ts",
		"a/b/c/route.ts",
		"x/y/route.ts",
	)

	tree, _ := build(t, root)

	err := tree.Walk(func(segments []string, n *Node) error {
		if !n.HasPath() {
			return nil
		}
		want := "/api/" + strings.Join(segments, "/")
		if n.Path != want {
			t.Errorf("path for %v = %q, want %q", segments, n.Path, want)
		}
		if strings.Contains(n.Path, "//") || strings.Contains(n.Path, "\\") {
			t.Errorf("path %q has bad separators", n.Path)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestBuildMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")

	tree, _, err := NewBuilder().Build(context.Background(), root)

	if tree != nil {
		t.Errorf("tree = %+v, want nil", tree)
	}
	if !errors.Is(err, ErrDirectoryUnreadable) {
		t.Fatalf("err = %v, want ErrDirectoryUnreadable", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want to wrap fs.ErrNotExist", err)
	}
	var dirErr *DirectoryError
	if !errors.As(err, &dirErr) || dirErr.Path != root {
		t.Errorf("DirectoryError.Path = %v, want %q", dirErr, root)
	}
}

func TestBuildRootIsAFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file.ts")
	if err := os.WriteFile(root, nil, 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := NewBuilder().Build(context.Background(), root)
	if !errors.Is(err, ErrDirectoryUnreadable) {
		t.Fatalf("err = %v, want ErrDirectoryUnreadable", err)
	}
}

func TestBuildUnreadableDescendant(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root can read any directory")
	}

	root := t.TempDir()
	mkTree(t, root, "users/route.ts", "locked/inner/route.ts")
	locked := filepath.Join(root, "locked")
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	_, _, err := NewBuilder().Build(context.Background(), root)

	var dirErr *DirectoryError
	if !errors.As(err, &dirErr) {
		t.Fatalf("err = %v, want *DirectoryError", err)
	}
	if dirErr.Path != locked {
		t.Errorf("DirectoryError.Path = %q, want %q", dirErr.Path, locked)
	}
}

func TestBuildCanceledContext(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "users/route.ts")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewBuilder().Build(ctx, root)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestBuildFollowsSymlinkedDirectories(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	shared := t.TempDir()
	mkTree(t, shared, "route.ts", "nested/route.ts")

	root := t.TempDir()
	mkTree(t, root, "users/route.ts")
	if err := os.Symlink(shared, filepath.Join(root, "shared")); err != nil {
		t.Fatal(err)
	}

	tree, _ := build(t, root)
	if got := tree.Lookup("shared", "nested"); got == nil || got.Path != "/api/shared/nested" {
		t.Errorf("shared/nested = %+v, want path /api/shared/nested", got)
	}

	tree, _ = build(t, root, WithFollowSymlinks(false))
	if tree.Child("shared") != nil {
		t.Error("shared should not be scanned when symlinks are not followed")
	}
}

func TestBuildSkipsSymlinkCycles(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	root := t.TempDir()
	mkTree(t, root, "users/route.ts")
	if err := os.Symlink(root, filepath.Join(root, "users", "loop")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "dangling")); err != nil {
		t.Fatal(err)
	}

	tree, stats := build(t, root)

	if got := tree.Endpoints(); !reflect.DeepEqual(got, []string{"/api/users"}) {
		t.Errorf("Endpoints() = %v, want [/api/users]", got)
	}
	if stats.Skipped != 1 {
		t.Errorf("stats.Skipped = %d, want 1", stats.Skipped)
	}
}

func TestBuildRejectsInvalidUTF8Names(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "users/route.ts")
	bad := filepath.Join(root, "x\xffy")
	if err := os.Mkdir(bad, 0755); err != nil {
		t.Skipf("filesystem does not accept non-UTF-8 names: %v", err)
	}
	mkTree(t, root, "x\xffy/route.ts")

	tree, _, err := NewBuilder().Build(context.Background(), root)

	if tree != nil {
		t.Errorf("tree = %+v, want nil", tree)
	}
	if !errors.Is(err, ErrDirectoryUnreadable) || !errors.Is(err, ErrInvalidName) {
		t.Fatalf("err = %v, want ErrDirectoryUnreadable and ErrInvalidName", err)
	}
	var dirErr *DirectoryError
	if !errors.As(err, &dirErr) || dirErr.Path != bad {
		t.Errorf("DirectoryError = %v, want path %q", dirErr, bad)
	}
}

func TestBuildIgnoresInvalidUTF8NamesWhenExcluded(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "users/route.ts")
	if err := os.Mkdir(filepath.Join(root, "x\xffy"), 0755); err != nil {
		t.Skipf("filesystem does not accept non-UTF-8 names: %v", err)
	}

	tree, stats := build(t, root, WithIgnore("x*"))

	if got := tree.Endpoints(); !reflect.DeepEqual(got, []string{"/api/users"}) {
		t.Errorf("Endpoints() = %v, want [/api/users]", got)
	}
	if stats.Skipped != 1 {
		t.Errorf("stats.Skipped = %d, want 1", stats.Skipped)
	}
}
