package model

import (
	"encoding/json"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/repohost/pkg/domain/types"
)

// TreeEntry is a file in a commit snapshot
type TreeEntry struct {
	Path        string            `json:"path"`
	ContentHash types.ContentHash `json:"contentHash"`
	Size        int64             `json:"size"`
}

// Tree is a flat, path-sorted file list. It is stored in the content store as a blob.
type Tree struct {
	Entries []TreeEntry `json:"entries"`
}

func NewTree(entries ...TreeEntry) *Tree {
	tree := &Tree{Entries: append([]TreeEntry{}, entries...)}
	tree.sort()
	return tree
}

func (x *Tree) sort() {
	sort.Slice(x.Entries, func(i, j int) bool {
		return x.Entries[i].Path < x.Entries[j].Path
	})
}

// Encode returns the canonical serialization. Identical trees always encode to identical bytes.
func (x *Tree) Encode() ([]byte, error) {
	tree := NewTree(x.Entries...)
	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode tree")
	}
	return raw, nil
}

func DecodeTree(raw []byte) (*Tree, error) {
	var tree Tree
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, goerr.Wrap(types.ErrIntegrityViolation, "stored tree is not decodable",
			goerr.V("error", err.Error()),
		)
	}
	tree.sort()
	return &tree, nil
}

func (x *Tree) Lookup(path string) (TreeEntry, bool) {
	i := sort.Search(len(x.Entries), func(i int) bool {
		return x.Entries[i].Path >= path
	})
	if i < len(x.Entries) && x.Entries[i].Path == path {
		return x.Entries[i], true
	}
	return TreeEntry{}, false
}

// TreeChange is a file change whose content was already written to the content store
type TreeChange struct {
	Path        string
	ContentHash types.ContentHash
	Size        int64
	Delete      bool
}

// Apply returns a new tree with changes applied. Deleting a path absent from the tree, or leaving a file
// at a path another file uses as a directory, is a validation error.
func (x *Tree) Apply(changes []TreeChange) (*Tree, error) {
	files := make(map[string]TreeEntry, len(x.Entries))
	for _, entry := range x.Entries {
		files[entry.Path] = entry
	}

	for _, change := range changes {
		if change.Delete {
			if _, ok := files[change.Path]; !ok {
				return nil, goerr.Wrap(types.ErrValidationFailed, "cannot delete a file that does not exist",
					goerr.V("path", change.Path),
				)
			}
			delete(files, change.Path)
			continue
		}

		files[change.Path] = TreeEntry{
			Path:        change.Path,
			ContentHash: change.ContentHash,
			Size:        change.Size,
		}
	}

	entries := make([]TreeEntry, 0, len(files))
	for _, entry := range files {
		for i := 0; i < len(entry.Path); i++ {
			if entry.Path[i] != '/' {
				continue
			}
			if _, ok := files[entry.Path[:i]]; ok {
				return nil, goerr.Wrap(types.ErrValidationFailed, "path is both a file and a directory",
					goerr.V("file", entry.Path[:i]),
					goerr.V("path", entry.Path),
				)
			}
		}
		entries = append(entries, entry)
	}
	return NewTree(entries...), nil
}

// FileDiff is a per-path difference between two trees
type FileDiff struct {
	Path    string            `json:"path"`
	Status  DiffStatus        `json:"status"`
	OldHash types.ContentHash `json:"oldHash,omitempty"`
	NewHash types.ContentHash `json:"newHash,omitempty"`
	Patch   string            `json:"patch,omitempty"`
}

type DiffStatus string

const (
	DiffAdded    DiffStatus = "added"
	DiffModified DiffStatus = "modified"
	DiffDeleted  DiffStatus = "deleted"
)

// CompareTrees returns changed paths from old to new in path order. Patch is left empty.
func CompareTrees(oldTree, newTree *Tree) []FileDiff {
	var diffs []FileDiff
	for _, entry := range newTree.Entries {
		prev, ok := oldTree.Lookup(entry.Path)
		switch {
		case !ok:
			diffs = append(diffs, FileDiff{Path: entry.Path, Status: DiffAdded, NewHash: entry.ContentHash})
		case prev.ContentHash != entry.ContentHash:
			diffs = append(diffs, FileDiff{Path: entry.Path, Status: DiffModified, OldHash: prev.ContentHash, NewHash: entry.ContentHash})
		}
	}
	for _, entry := range oldTree.Entries {
		if _, ok := newTree.Lookup(entry.Path); !ok {
			diffs = append(diffs, FileDiff{Path: entry.Path, Status: DiffDeleted, OldHash: entry.ContentHash})
		}
	}

	sort.SliceStable(diffs, func(i, j int) bool {
		return diffs[i].Path < diffs[j].Path
	})
	return diffs
}
