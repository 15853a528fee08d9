package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/tally/internal/accounts"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/gitops"
	"github.com/cleared-dev/tally/internal/journal"
	"github.com/cleared-dev/tally/internal/render"
)

type initOptions struct {
	name     string
	template string
	currency string
	noGit    bool
}

func newInitCommand(g *globals) *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new book",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := g.bookDir
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			hash, err := runInit(g, absDir, opts)
			if err != nil {
				return err
			}
			if hash != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized book %q at %s (%s)\n", opts.name, absDir, hash)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized book %q at %s\n", opts.name, absDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "book name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&opts.template, "template", "household", "starter chart of accounts")
	cmd.Flags().StringVar(&opts.currency, "currency", "USD", "ISO 4217 currency code used for display")
	cmd.Flags().BoolVar(&opts.noGit, "no-git", false, "do not create a git repository")

	return cmd
}

func runInit(g *globals, dir string, opts initOptions) (string, error) {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return "", fmt.Errorf("%s already exists", cfgPath)
	}
	if _, err := render.NewMoney(opts.currency); err != nil {
		return "", err
	}
	chart, err := accounts.DefaultChart(opts.template)
	if err != nil {
		return "", err
	}

	for _, d := range []string{"accounts", "journal"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(opts.name, opts.template)
	cfg.Book.Currency = opts.currency
	if opts.noGit {
		cfg.Git.AutoCommit = false
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}

	if err := accounts.NewService(chart).Save(dir); err != nil {
		return "", fmt.Errorf("writing chart of accounts: %w", err)
	}
	if err := journal.Create(dir); err != nil {
		return "", fmt.Errorf("writing journal: %w", err)
	}
	g.log.Debug("book files written", zap.String("root", dir), zap.Int("accounts", len(chart)))

	if opts.noGit {
		return "", nil
	}

	repo := gitops.Open(dir, gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail})
	if err := repo.Init(); err != nil {
		return "", fmt.Errorf("git init: %w", err)
	}
	hash, err := repo.CommitAll("init: " + opts.name)
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}
