package client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/diff"
	"github.com/sergi/go-diff/diffmatchpatch"

	apperrors "github.com/AreteDriver/Gorgon/internal/errors"
)

// binarySniffLen matches git's heuristic: a NUL in the first 8000 bytes means binary.
const binarySniffLen = 8000

// Diff renders a unified patch. With staged set it compares the HEAD tree to
// the index; otherwise the index to the working tree, untracked files included.
func (c *Client) Diff(ctx context.Context, repoPath string, staged bool) (string, error) {
	repo, wt, err := openWorktree(repoPath)
	if err != nil {
		return "", err
	}
	st, err := wt.Status()
	if err != nil {
		return "", apperrors.Git(err)
	}
	idx, err := repo.Storer.Index()
	if err != nil {
		return "", apperrors.Git(err)
	}

	var patches []fdiff.FilePatch
	if staged {
		patches, err = stagedPatches(repo, idx, st)
	} else {
		patches, err = unstagedPatches(repo, wt, idx, st)
	}
	if err != nil {
		return "", err
	}
	if len(patches) == 0 {
		return "", nil
	}

	var buf strings.Builder
	if err := fdiff.NewUnifiedEncoder(&buf, fdiff.DefaultContextLines).Encode(&patch{files: patches}); err != nil {
		return "", apperrors.Git(err)
	}
	return buf.String(), nil
}

func stagedPatches(repo *git.Repository, idx *index.Index, st git.Status) ([]fdiff.FilePatch, error) {
	base, err := headTree(repo)
	if err != nil {
		return nil, err
	}
	var out []fdiff.FilePatch
	for _, path := range sortedPaths(st) {
		fs := st[path]
		if fs.Staging == git.Unmodified || fs.Staging == git.Untracked {
			continue
		}
		fromPath := path
		if fs.Staging == git.Renamed && fs.Extra != "" {
			fromPath = fs.Extra
		}
		from, err := treeSide(base, fromPath)
		if err != nil {
			return nil, err
		}
		to, err := indexSide(repo, idx, path)
		if err != nil {
			return nil, err
		}
		if fp := newFilePatch(from, to); fp != nil {
			out = append(out, fp)
		}
	}
	return out, nil
}

func unstagedPatches(repo *git.Repository, wt *git.Worktree, idx *index.Index, st git.Status) ([]fdiff.FilePatch, error) {
	var out []fdiff.FilePatch
	for _, path := range sortedPaths(st) {
		fs := st[path]
		if fs.Worktree == git.Unmodified {
			continue
		}
		from, err := indexSide(repo, idx, path)
		if err != nil {
			return nil, err
		}
		to, err := worktreeSide(wt, path)
		if err != nil {
			return nil, err
		}
		if fp := newFilePatch(from, to); fp != nil {
			out = append(out, fp)
		}
	}
	return out, nil
}

func sortedPaths(st git.Status) []string {
	paths := make([]string, 0, len(st))
	for p := range st {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// headTree returns HEAD's tree, or nil when the branch is unborn.
func headTree(repo *git.Repository) (*object.Tree, error) {
	hash, ok, err := headCommitHash(repo)
	if err != nil || !ok {
		return nil, err
	}
	commit, err := repo.CommitObject(hash)
	if err != nil {
		return nil, apperrors.Git(err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, apperrors.Git(err)
	}
	return tree, nil
}

// side is one version of a file taking part in a patch.
type side struct {
	path    string
	hash    plumbing.Hash
	mode    filemode.FileMode
	content []byte
}

func (s *side) Hash() plumbing.Hash     { return s.hash }
func (s *side) Mode() filemode.FileMode { return s.mode }
func (s *side) Path() string            { return s.path }

func treeSide(tree *object.Tree, path string) (*side, error) {
	if tree == nil {
		return nil, nil
	}
	f, err := tree.File(path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, nil
		}
		return nil, apperrors.Git(err)
	}
	r, err := f.Reader()
	if err != nil {
		return nil, apperrors.Git(err)
	}
	defer r.Close()
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.Git(err)
	}
	return &side{path: path, hash: f.Hash, mode: f.Mode, content: content}, nil
}

func indexSide(repo *git.Repository, idx *index.Index, path string) (*side, error) {
	e, err := idx.Entry(path)
	if err != nil {
		if errors.Is(err, index.ErrEntryNotFound) {
			return nil, nil
		}
		return nil, apperrors.Git(err)
	}
	blob, err := repo.BlobObject(e.Hash)
	if err != nil {
		return nil, apperrors.Git(err)
	}
	r, err := blob.Reader()
	if err != nil {
		return nil, apperrors.Git(err)
	}
	defer r.Close()
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.Git(err)
	}
	return &side{path: path, hash: e.Hash, mode: e.Mode, content: content}, nil
}

func worktreeSide(wt *git.Worktree, path string) (*side, error) {
	info, err := wt.Filesystem.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.IO(err)
	}
	var content []byte
	if info.Mode()&os.ModeSymlink != 0 {
		target, err := wt.Filesystem.Readlink(path)
		if err != nil {
			return nil, apperrors.IO(err)
		}
		content = []byte(target)
	} else {
		f, err := wt.Filesystem.Open(path)
		if err != nil {
			return nil, apperrors.IO(err)
		}
		content, err = io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, apperrors.IO(err)
		}
	}
	mode, err := filemode.NewFromOSFileMode(info.Mode())
	if err != nil {
		mode = filemode.Regular
	}
	return &side{
		path:    path,
		hash:    plumbing.ComputeHash(plumbing.BlobObject, content),
		mode:    mode,
		content: content,
	}, nil
}

// filePatch implements diff.FilePatch over two in-memory sides.
type filePatch struct {
	from, to fdiff.File
	binary   bool
	chunks   []fdiff.Chunk
}

func (p *filePatch) IsBinary() bool               { return p.binary }
func (p *filePatch) Files() (from, to fdiff.File) { return p.from, p.to }
func (p *filePatch) Chunks() []fdiff.Chunk        { return p.chunks }

type chunk struct {
	content string
	op      fdiff.Operation
}

func (c *chunk) Content() string       { return c.content }
func (c *chunk) Type() fdiff.Operation { return c.op }

type patch struct {
	files []fdiff.FilePatch
}

func (p *patch) FilePatches() []fdiff.FilePatch { return p.files }
func (p *patch) Message() string                { return "" }

// newFilePatch returns nil when both sides are absent or identical.
func newFilePatch(from, to *side) *filePatch {
	if from == nil && to == nil {
		return nil
	}
	if from != nil && to != nil && from.hash == to.hash && from.mode == to.mode {
		return nil
	}
	fp := &filePatch{}
	var fromContent, toContent []byte
	if from != nil {
		fp.from = from
		fromContent = from.content
	}
	if to != nil {
		fp.to = to
		toContent = to.content
	}
	if isBinary(fromContent) || isBinary(toContent) {
		fp.binary = true
		return fp
	}
	for _, d := range diff.Do(string(fromContent), string(toContent)) {
		var op fdiff.Operation
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			op = fdiff.Equal
		case diffmatchpatch.DiffInsert:
			op = fdiff.Add
		case diffmatchpatch.DiffDelete:
			op = fdiff.Delete
		}
		fp.chunks = append(fp.chunks, &chunk{content: d.Text, op: op})
	}
	return fp
}

func isBinary(content []byte) bool {
	if len(content) > binarySniffLen {
		content = content[:binarySniffLen]
	}
	return bytes.IndexByte(content, 0) >= 0
}
