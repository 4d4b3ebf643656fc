package cli_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/repohost/pkg/cli"
)

// initGitRepo creates a repository in a temp dir with one commit of files
func initGitRepo(t *testing.T, files map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()

	repo := gt.R1(git.PlainInit(dir, false)).NoError(t)
	wt := gt.R1(repo.Worktree()).NoError(t)

	for name, data := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		gt.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		gt.NoError(t, os.WriteFile(p, data, 0o644))
		gt.R1(wt.Add(name)).NoError(t)
	}

	gt.R1(wt.Commit("initial import\n", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Alice",
			Email: "alice@example.com",
			When:  time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		},
	})).NoError(t)

	return dir
}

func TestReadGitSnapshot(t *testing.T) {
	dir := initGitRepo(t, map[string][]byte{
		"README.md":   []byte("# demo\n"),
		"src/main.go": []byte("package main\n"),
		"logo.png":    {0x89, 'P', 'N', 'G', 0x00, 0x01},
	})

	snapshot := gt.R1(cli.ReadGitSnapshot(dir)).NoError(t)
	gt.V(t, snapshot.Message).Equal("initial import")
	gt.V(t, snapshot.AuthorName).Equal("Alice")
	gt.V(t, len(snapshot.CommitID)).Equal(40)
	gt.V(t, snapshot.Files).Equal(map[string]string{
		"README.md":   "# demo\n",
		"src/main.go": "package main\n",
	})
	gt.V(t, snapshot.Skipped).Equal([]string{"logo.png"})

	t.Run("not a git repository", func(t *testing.T) {
		_, err := cli.ReadGitSnapshot(t.TempDir())
		gt.Error(t, err)
	})
}

func TestDetectRemoteRepository(t *testing.T) {
	dir := initGitRepo(t, map[string][]byte{"a.txt": []byte("a")})

	t.Run("no remote", func(t *testing.T) {
		_, _, err := cli.DetectRemoteRepository(dir)
		gt.Error(t, err)
	})

	t.Run("origin remote", func(t *testing.T) {
		repo := gt.R1(git.PlainOpen(dir)).NoError(t)
		gt.R1(repo.CreateRemote(&gitconfig.RemoteConfig{
			Name: "origin",
			URLs: []string{"git@example.com:alice/demo.git"},
		})).NoError(t)

		owner, name, err := cli.DetectRemoteRepository(dir)
		gt.NoError(t, err)
		gt.V(t, owner).Equal("alice")
		gt.V(t, name).Equal("demo")
	})
}

func TestParseRemoteURL(t *testing.T) {
	testCases := []struct {
		url   string
		owner string
		name  string
		fail  bool
	}{
		{url: "git@example.com:alice/demo.git", owner: "alice", name: "demo"},
		{url: "https://example.com/alice/demo.git", owner: "alice", name: "demo"},
		{url: "https://example.com/alice/demo", owner: "alice", name: "demo"},
		{url: "ssh://git@example.com:22/alice/demo.git", owner: "alice", name: "demo"},
		{url: "https://example.com/demo.git", fail: true},
		{url: "demo", fail: true},
	}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			owner, name, err := cli.ParseRemoteURL(tc.url)
			if tc.fail {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.V(t, owner).Equal(tc.owner)
			gt.V(t, name).Equal(tc.name)
		})
	}
}
