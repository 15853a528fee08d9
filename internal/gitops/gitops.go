package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Author identifies who commits book changes. It is used for both the author
// and committer so commits work without a global git identity.
type Author struct {
	Name  string
	Email string
}

// Repo runs git inside a book directory.
type Repo struct {
	dir    string
	author Author
}

// Open returns a Repo for dir. The directory need not be a repository yet.
func Open(dir string, author Author) *Repo {
	return &Repo{dir: dir, author: author}
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Init initializes a new git repository unless one already exists.
func (r *Repo) Init() error {
	if IsRepo(r.dir) {
		return nil
	}
	if _, err := r.git("init"); err != nil {
		return err
	}
	return nil
}

// CommitAll stages every change and commits. Returns the short commit hash.
func (r *Repo) CommitAll(message string) (string, error) {
	return r.commit(message, nil)
}

// CommitPaths stages and commits only the given paths (relative to the
// book). Changes staged elsewhere stay staged and out of the commit.
// Returns "" without committing when the paths hold no changes.
func (r *Repo) CommitPaths(message string, paths ...string) (string, error) {
	if len(paths) == 0 {
		return "", fmt.Errorf("commit %q: no paths given", message)
	}
	return r.commit(message, paths)
}

// commit limits every step to pathspec; nil means the whole tree.
func (r *Repo) commit(message string, pathspec []string) (string, error) {
	withPaths := func(args ...string) []string {
		if pathspec == nil {
			return args
		}
		return append(append(args, "--"), pathspec...)
	}

	if _, err := r.git(withPaths("add", "-A")...); err != nil {
		return "", err
	}

	staged, err := r.git(withPaths("diff", "--cached", "--name-only")...)
	if err != nil {
		return "", err
	}
	if staged == "" {
		return "", nil
	}

	author := fmt.Sprintf("%s <%s>", r.author.Name, r.author.Email)
	if _, err := r.git(withPaths("commit", "-m", message, "--author", author)...); err != nil {
		return "", err
	}
	return r.git("rev-parse", "--short", "HEAD")
}

func (r *Repo) git(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.dir
	cmd.Env = append(os.Environ(),
		"GIT_COMMITTER_NAME="+r.author.Name,
		"GIT_COMMITTER_EMAIL="+r.author.Email,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(string(out)), err)
	}
	return strings.TrimSpace(string(out)), nil
}
