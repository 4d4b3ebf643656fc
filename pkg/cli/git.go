package cli

import (
	"net/url"
	"path"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/m-mizutani/goerr/v2"
)

// GitSnapshot is the HEAD tree of a local git repository
type GitSnapshot struct {
	CommitID   string
	Message    string
	AuthorName string
	Files      map[string]string
	// Skipped lists binary files, which can not be carried in a JSON commit request
	Skipped []string
}

// ReadGitSnapshot reads every file of the HEAD commit in dir
func ReadGitSnapshot(dir string) (*GitSnapshot, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open git repository", goerr.V("dir", dir))
	}

	head, err := repo.Head()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get HEAD", goerr.V("dir", dir))
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get HEAD commit", goerr.V("hash", head.Hash().String()))
	}

	snapshot := &GitSnapshot{
		CommitID:   commit.Hash.String(),
		Message:    strings.TrimSpace(commit.Message),
		AuthorName: commit.Author.Name,
		Files:      make(map[string]string),
	}

	files, err := commit.Files()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list files of HEAD commit")
	}
	if err := files.ForEach(func(f *object.File) error {
		binary, err := f.IsBinary()
		if err != nil {
			return goerr.Wrap(err, "failed to inspect file", goerr.V("path", f.Name))
		}
		if binary {
			snapshot.Skipped = append(snapshot.Skipped, f.Name)
			return nil
		}

		content, err := f.Contents()
		if err != nil {
			return goerr.Wrap(err, "failed to read file", goerr.V("path", f.Name))
		}
		snapshot.Files[f.Name] = content
		return nil
	}); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// DetectRemoteRepository derives owner and repository name from the origin remote URL,
// e.g. git@example.com:owner/repo.git or https://example.com/owner/repo.git
func DetectRemoteRepository(dir string) (string, string, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", "", goerr.Wrap(err, "failed to open git repository", goerr.V("dir", dir))
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return "", "", goerr.Wrap(err, "failed to get remote origin")
	}
	if len(remote.Config().URLs) == 0 {
		return "", "", goerr.New("no remote URL found")
	}

	return ParseRemoteURL(remote.Config().URLs[0])
}

func ParseRemoteURL(remoteURL string) (string, string, error) {
	var p string
	if u, err := url.Parse(remoteURL); err == nil && u.Scheme != "" && u.Host != "" {
		p = u.Path
	} else if _, after, ok := strings.Cut(remoteURL, ":"); ok {
		// scp-like syntax: user@host:owner/repo.git
		p = after
	}

	p = strings.TrimSuffix(strings.Trim(p, "/"), ".git")
	owner, name := path.Split(p)
	owner = path.Base(strings.TrimSuffix(owner, "/"))
	if owner == "" || owner == "." || owner == "/" || name == "" {
		return "", "", goerr.New("failed to parse owner/repo from git remote URL", goerr.V("url", remoteURL))
	}

	return owner, name, nil
}
