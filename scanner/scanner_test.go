package scanner

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/lexandro/heatree/churn"
	"github.com/lexandro/heatree/ignore"
	"github.com/lexandro/heatree/metrics"
	"github.com/lexandro/heatree/tree"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func nLines(n int) string {
	return strings.Repeat("line\n", n)
}

func childNames(n *tree.Node) []string {
	names := make([]string, len(n.Children))
	for i, c := range n.Children {
		names[i] = c.Name
	}
	return names
}

func Test_Scan_BuildsSortedTreeWithMetrics(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "z.go", nLines(3))
	writeFile(t, root, "a.go", nLines(2))
	writeFile(t, root, "src/main.go", nLines(5))
	writeFile(t, root, "lib/util.go", nLines(7))

	freq := churn.FrequencyMap{"src/main.go": 2, "a.go": 1}
	node, err := Scan(root, freq)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	got := strings.Join(childNames(node), ",")
	if got != "lib,src,a.go,z.go" {
		t.Errorf("expected lib,src,a.go,z.go; got %s", got)
	}
	if node.Metrics.LineCount != 17 {
		t.Errorf("expected root line count 17, got %d", node.Metrics.LineCount)
	}

	main := node.Find(filepath.Join(root, "src", "main.go"))
	if main == nil {
		t.Fatal("expected src/main.go in tree")
	}
	if main.Metrics.ChangeRate != 2 || main.Metrics.LineCount != 5 {
		t.Errorf("unexpected main.go metrics: %+v", main.Metrics)
	}
	if main.Language != "Go" {
		t.Errorf("expected language Go, got %s", main.Language)
	}

	// lib (7 lines, rate 0), src (5 lines, rate 2), a.go (1), z.go (0)
	if node.Metrics.ChangeRate != 0.75 {
		t.Errorf("expected root rate 0.75, got %v", node.Metrics.ChangeRate)
	}
}

func Test_Scan_SkipsHiddenEntries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".git/config", "[core]\n")
	writeFile(t, root, ".env", "SECRET=1\n")
	writeFile(t, root, "pkg/.hidden.go", nLines(100))
	writeFile(t, root, "pkg/shown.go", nLines(1))

	node, err := Scan(root, nil)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	node.Walk(func(n *tree.Node, depth int) bool {
		if depth > 0 && strings.HasPrefix(n.Name, ".") {
			t.Errorf("hidden entry %s should not be in the tree", n.Path)
		}
		return true
	})
	if node.Metrics.LineCount != 1 {
		t.Errorf("expected hidden file lines to be excluded, got %d", node.Metrics.LineCount)
	}
}

func Test_Scan_UnreadableFilesCountZero(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "text.txt", nLines(4))
	writeFile(t, root, "image.png", "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	writeFile(t, root, "latin1.txt", "caf\xe9\nna\xefve\n")

	node, stats, err := New(Options{Logger: testLogger(), Workers: 2}).Scan(root, nil)
	if err != nil {
		t.Fatalf("expected soft failure, got %v", err)
	}

	for _, name := range []string{"image.png", "latin1.txt"} {
		n := node.Find(filepath.Join(root, name))
		if n == nil {
			t.Fatalf("expected %s to stay in the tree", name)
		}
		if n.Metrics.LineCount != 0 {
			t.Errorf("%s: expected 0 lines, got %d", name, n.Metrics.LineCount)
		}
	}
	if stats.Unreadable != 2 {
		t.Errorf("expected 2 unreadable files, got %d", stats.Unreadable)
	}
	if stats.Files != 3 {
		t.Errorf("expected 3 files, got %d", stats.Files)
	}
	if node.Metrics.LineCount != 4 {
		t.Errorf("expected root line count 4, got %d", node.Metrics.LineCount)
	}
}

func Test_Scan_MissingRootIsFilesystemError(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"), nil)
	if !errors.Is(err, ErrFilesystem) {
		t.Fatalf("expected ErrFilesystem, got %v", err)
	}
}

func Test_Scan_UnlistableSubdirectoryAborts(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := t.TempDir()
	writeFile(t, root, "ok.go", nLines(1))
	locked := filepath.Join(root, "locked")
	if err := os.Mkdir(locked, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	node, err := Scan(root, nil)
	if !errors.Is(err, ErrFilesystem) {
		t.Fatalf("expected ErrFilesystem, got %v", err)
	}
	if node != nil {
		t.Error("expected no partial tree")
	}
}

func Test_Scan_ExpandState(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/b/c.go", nLines(1))

	node, err := Scan(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !node.Expanded {
		t.Error("expected root expanded")
	}
	if node.Children[0].Expanded {
		t.Error("expected subdirectories collapsed by default")
	}

	node, _, err = New(Options{ExpandAll: true}).Scan(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !node.Children[0].Expanded || !node.Children[0].Children[0].Expanded {
		t.Error("expected every directory expanded with ExpandAll")
	}
}

func Test_Scan_MatcherExclusions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "node_modules/dep/index.js", nLines(500))
	writeFile(t, root, "gen/api.pb.go", nLines(300))
	writeFile(t, root, "main.go", nLines(10))

	matcher, err := ignore.NewMatcher(ignore.Options{
		RootDir:     root,
		Patterns:    []string{"**/*.pb.go"},
		UseDefaults: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	node, _, err := New(Options{Matcher: matcher}).Scan(root, nil)
	if err != nil {
		t.Fatal(err)
	}

	if node.Find(filepath.Join(root, "node_modules")) != nil {
		t.Error("expected node_modules excluded")
	}
	gen := node.Find(filepath.Join(root, "gen"))
	if gen == nil {
		t.Fatal("expected gen directory kept")
	}
	if len(gen.Children) != 0 || gen.Metrics.LineCount != 0 {
		t.Errorf("expected gen to be empty, got %v", childNames(gen))
	}
	if node.Metrics.LineCount != 10 {
		t.Errorf("expected 10 lines, got %d", node.Metrics.LineCount)
	}
}

func Test_Scan_DirectoryInvariants(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/x.go", nLines(12))
	writeFile(t, root, "a/b/y.go", nLines(30))
	writeFile(t, root, "a/b/Z.go", nLines(1))
	writeFile(t, root, "a/empty/blob.bin", "\x00\x01")
	writeFile(t, root, "c.go", nLines(2))

	freq := churn.FrequencyMap{"a/x.go": 3, "a/b/y.go": 1, "a/empty/blob.bin": 8}
	node, err := Scan(root, freq)
	if err != nil {
		t.Fatal(err)
	}

	node.Walk(func(n *tree.Node, _ int) bool {
		if !n.IsDir {
			return true
		}
		sum := 0
		n.Walk(func(d *tree.Node, _ int) bool {
			if !d.IsDir {
				sum += d.Metrics.LineCount
			}
			return true
		})
		if sum != n.Metrics.LineCount {
			t.Errorf("%s: expected line sum %d, got %d", n.Path, sum, n.Metrics.LineCount)
		}

		seenFile := false
		for i, c := range n.Children {
			if !c.IsDir {
				seenFile = true
			} else if seenFile {
				t.Errorf("%s: directory %s listed after a file", n.Path, c.Name)
			}
			if i > 0 && n.Children[i-1].IsDir == c.IsDir && n.Children[i-1].Name > c.Name {
				t.Errorf("%s: %s sorted before %s", n.Path, n.Children[i-1].Name, c.Name)
			}
		}
		return true
	})

	a := node.Find(filepath.Join(root, "a"))
	// a: b (31 lines, rate 0.5), empty (0 lines, skipped), x.go (3) -> 3.5 / 2
	if a.Metrics.ChangeRate != 1.75 {
		t.Errorf("expected a rate 1.75, got %v", a.Metrics.ChangeRate)
	}
}

// Test_Scan_EndToEnd covers a repository with a.txt (10 lines, touched by 3
// commits) and lib/b.txt (60 lines, never touched) over a 30 day window.
func Test_Scan_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}

	when := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	commit := func(msg string) {
		t.Helper()
		when = when.Add(24 * time.Hour)
		sig := &object.Signature{Name: "Dev", Email: "dev@example.com", When: when}
		if _, err := wt.Commit(msg, &git.CommitOptions{Author: sig, Committer: sig}); err != nil {
			t.Fatalf("commit: %v", err)
		}
	}
	add := func(rel, content string) {
		t.Helper()
		writeFile(t, dir, rel, content)
		if _, err := wt.Add(rel); err != nil {
			t.Fatalf("add %s: %v", rel, err)
		}
	}

	add("a.txt", nLines(10))
	add("lib/b.txt", nLines(60))
	commit("initial")
	for i := 1; i <= 3; i++ {
		add("a.txt", strings.Repeat(fmt.Sprintf("rev %d\n", i), 10))
		commit(fmt.Sprintf("touch a %d", i))
	}

	freq, err := churn.Analyze(dir, 30)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	node, err := Scan(dir, freq)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	a := node.Find(filepath.Join(dir, "a.txt"))
	if a == nil {
		t.Fatal("expected a.txt in tree")
	}
	if a.Metrics.ChangeRate != 0.1 {
		t.Errorf("expected a.txt rate 0.1, got %v", a.Metrics.ChangeRate)
	}
	if a.Metrics.LineCount != 10 {
		t.Errorf("expected a.txt 10 lines, got %d", a.Metrics.LineCount)
	}
	if metrics.ChangeBucket(a.Metrics.ChangeRate) != 0 {
		t.Errorf("expected a.txt change bucket 0")
	}

	lib := node.Find(filepath.Join(dir, "lib"))
	if lib == nil {
		t.Fatal("expected lib in tree")
	}
	if lib.Metrics.LineCount != 60 {
		t.Errorf("expected lib 60 lines, got %d", lib.Metrics.LineCount)
	}
	if lib.Metrics.ChangeRate != 0 {
		t.Errorf("expected lib rate 0, got %v", lib.Metrics.ChangeRate)
	}
	if node.Metrics.LineCount != 70 {
		t.Errorf("expected root 70 lines, got %d", node.Metrics.LineCount)
	}
	if node.Find(filepath.Join(dir, ".git")) != nil {
		t.Error("expected .git to be excluded")
	}
}
