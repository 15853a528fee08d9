package accounts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cleared-dev/tally/internal/model"
)

// Path returns the chart-of-accounts.csv location inside a book.
func Path(bookRoot string) string {
	return filepath.Join(bookRoot, "accounts", "chart-of-accounts.csv")
}

// Service provides in-memory lookup over the chart of accounts.
type Service struct {
	accounts []model.Account
	byID     map[string]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	byID := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return &Service{accounts: accounts, byID: byID}
}

// Load reads chart-of-accounts.csv from a book root and returns a Service.
func Load(bookRoot string) (*Service, error) {
	f, err := os.Open(Path(bookRoot))
	if err != nil {
		return nil, fmt.Errorf("opening chart of accounts: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f)
	if err != nil {
		return nil, fmt.Errorf("reading chart of accounts: %w", err)
	}
	if dup := firstDuplicate(accts); dup != "" {
		return nil, fmt.Errorf("reading chart of accounts: duplicate account id %q", dup)
	}
	return NewService(accts), nil
}

func firstDuplicate(accts []model.Account) string {
	seen := make(map[string]bool, len(accts))
	for _, a := range accts {
		if seen[a.ID] {
			return a.ID
		}
		seen[a.ID] = true
	}
	return ""
}

// All returns a copy of all accounts in chart order.
func (s *Service) All() []model.Account {
	out := make([]model.Account, len(s.accounts))
	copy(out, s.accounts)
	return out
}

// Get returns an account by ID.
func (s *Service) Get(id string) (model.Account, bool) {
	a, ok := s.byID[id]
	return a, ok
}

// Exists reports whether an account ID exists.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// IsActive reports whether an account exists and is not disabled.
func (s *Service) IsActive(id string) bool {
	a, ok := s.byID[id]
	return ok && a.IsActive()
}

// ByType returns all accounts of the given type.
func (s *Service) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range s.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// Save writes the chart of accounts to accounts/chart-of-accounts.csv,
// replacing the file only once the new content is fully written.
func (s *Service) Save(bookRoot string) error {
	path := Path(bookRoot)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating accounts dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "chart-of-accounts.csv.tmp-*")
	if err != nil {
		return fmt.Errorf("creating chart of accounts file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteAccounts(tmp, s.accounts); err != nil {
		tmp.Close()
		return fmt.Errorf("writing chart of accounts: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing chart of accounts: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
