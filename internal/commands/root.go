package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/tally/internal/buildinfo"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/gitops"
	"github.com/cleared-dev/tally/internal/logging"
)

// globals holds state shared by every subcommand of one invocation.
type globals struct {
	bookDir  string
	logLevel string
	log      *zap.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globals{log: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Double-entry bookkeeping and reports for a personal book",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = g.log.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.bookDir, "book", "b", "", "book directory (default $"+config.EnvBook+" or .)")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "debug, info, warn or error (default $"+config.EnvLogLevel+" or warn)")

	rootCmd.AddCommand(
		newInitCommand(g),
		newPostCommand(g),
		newAmendCommand(g),
		newDeleteCommand(g),
		newCheckCommand(g),
		newTrialBalanceCommand(g),
		newIncomeCommand(g),
		newBalanceSheetCommand(g),
		newLedgerCommand(g),
	)

	return rootCmd
}

// setup loads .env, then resolves the book directory and the logger.
func (g *globals) setup(cmd *cobra.Command) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	if g.bookDir == "" {
		g.bookDir = config.Getenv(config.EnvBook, ".")
	}
	level := g.logLevel
	if level == "" {
		level = os.Getenv(config.EnvLogLevel)
	}

	log, err := logging.New(level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	g.log = log.With(zap.String("cmd", cmd.Name()))
	return nil
}

// book is an opened book directory.
type book struct {
	root string
	cfg  *config.Config
}

func (g *globals) openBook() (*book, error) {
	root, err := filepath.Abs(g.bookDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.LoadBook(root)
	if err != nil {
		return nil, fmt.Errorf("opening book %s: %w", root, err)
	}
	g.log.Debug("opened book", zap.String("root", root), zap.String("name", cfg.Book.Name))
	return &book{root: root, cfg: cfg}, nil
}

// commit records journal changes in git when the book asks for it. Returns
// the short hash, or "" when nothing was committed.
func (g *globals) commit(b *book, message string) (string, error) {
	if !b.cfg.Git.AutoCommit || !gitops.IsRepo(b.root) {
		return "", nil
	}
	repo := gitops.Open(b.root, gitops.Author{Name: b.cfg.Git.AuthorName, Email: b.cfg.Git.AuthorEmail})
	hash, err := repo.CommitPaths(message, "journal")
	if err != nil {
		return "", fmt.Errorf("committing: %w", err)
	}
	g.log.Info("committed", zap.String("hash", hash), zap.String("message", message))
	return hash, nil
}
