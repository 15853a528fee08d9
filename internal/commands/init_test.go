package commands_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/tally/internal/accounts"
	"github.com/cleared-dev/tally/internal/commands"
	"github.com/cleared-dev/tally/internal/config"
)

func runTally(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := commands.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// newBook initializes a book without git in a temp dir.
func newBook(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "book")
	_, err := runTally(t, "init", dir, "--name", "Household", "--no-git")
	require.NoError(t, err)
	return dir
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := newBook(t)

	for _, d := range []string{"accounts", "journal"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
	for _, f := range []string{"headers.csv", "lines.csv"} {
		_, err := os.Stat(filepath.Join(dir, "journal", f))
		require.NoError(t, err, "%s should exist", f)
	}
}

func TestInit_Config(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "book")
	_, err := runTally(t, "init", dir, "--name", "My Household", "--currency", "EUR", "--no-git")
	require.NoError(t, err)

	cfg, err := config.LoadBook(dir)
	require.NoError(t, err)
	assert.Equal(t, "My Household", cfg.Book.Name)
	assert.Equal(t, "household", cfg.Book.Template)
	assert.Equal(t, "EUR", cfg.Book.Currency)
	assert.False(t, cfg.Git.AutoCommit)
}

func TestInit_Accounts(t *testing.T) {
	dir := newBook(t)

	svc, err := accounts.Load(dir)
	require.NoError(t, err)
	assert.Len(t, svc.All(), 14, "household chart has 14 accounts")

	re, ok := svc.Get("3900")
	require.True(t, ok)
	assert.True(t, re.RetainedEarnings)
}

func TestInit_RequiresName(t *testing.T) {
	_, err := runTally(t, "init", t.TempDir(), "--no-git")
	require.Error(t, err, "init without --name should fail")
}

func TestInit_RefusesExistingBook(t *testing.T) {
	dir := newBook(t)
	_, err := runTally(t, "init", dir, "--name", "Again", "--no-git")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInit_UnknownTemplate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "book")
	_, err := runTally(t, "init", dir, "--name", "X", "--template", "farm", "--no-git")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown template "farm"`)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "nothing should be written for a rejected template")
}

func TestInit_UnknownCurrency(t *testing.T) {
	_, err := runTally(t, "init", t.TempDir(), "--name", "X", "--currency", "XXQ", "--no-git")
	require.Error(t, err)
}

func TestInit_GitRepo(t *testing.T) {
	requireGit(t)
	dir := filepath.Join(t.TempDir(), "book")
	out, err := runTally(t, "init", dir, "--name", "Household")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized book \"Household\"")

	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git should exist")

	log := exec.Command("git", "log", "--format=%s|%an <%ae>", "-1")
	log.Dir = dir
	gitOut, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(gitOut), "init: Household|Tally <tally@localhost>")
}

func TestInit_UsesBookFlag(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "book")
	_, err := runTally(t, "--book", dir, "init", "--name", "Flagged", "--no-git")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, config.FileName))
	assert.NoError(t, err)
}
