package journal

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cleared-dev/tally/internal/accounts"
	"github.com/cleared-dev/tally/internal/id"
	"github.com/cleared-dev/tally/internal/model"
)

// HeadersPath returns the journal/headers.csv location inside a book.
func HeadersPath(bookRoot string) string {
	return filepath.Join(bookRoot, "journal", "headers.csv")
}

// LinesPath returns the journal/lines.csv location inside a book.
func LinesPath(bookRoot string) string {
	return filepath.Join(bookRoot, "journal", "lines.csv")
}

// Snapshot is a consistent read of a book handed to the report builders.
type Snapshot struct {
	Accounts []model.Account
	Headers  []model.JournalHeader
	Lines    []model.JournalLine
}

// LoadSnapshot reads the chart of accounts and the whole journal of a book.
func LoadSnapshot(bookRoot string) (Snapshot, error) {
	accts, err := accounts.Load(bookRoot)
	if err != nil {
		return Snapshot{}, err
	}
	svc := NewService(bookRoot, accts)
	headers, lines, err := svc.Read()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Accounts: accts.All(), Headers: headers, Lines: lines}, nil
}

// Create writes empty headers.csv and lines.csv for a new book. Existing
// journal files are left alone.
func Create(bookRoot string) error {
	files := []struct {
		path  string
		write func(io.Writer) error
	}{
		{HeadersPath(bookRoot), func(w io.Writer) error { return WriteHeaders(w, nil) }},
		{LinesPath(bookRoot), func(w io.Writer) error { return WriteLines(w, nil) }},
	}
	for _, f := range files {
		if _, err := os.Stat(f.path); err == nil {
			continue
		}
		if err := writeFileAtomic(f.path, f.write); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Base(f.path), err)
		}
	}
	return nil
}

// Service reads and writes the journal of one book. It is the only writer;
// callers serialize access to a book.
type Service struct {
	bookRoot string
	accounts AccountChecker
	ids      *id.Generator
	now      func() time.Time
}

// NewService creates a journal Service.
func NewService(bookRoot string, accounts AccountChecker) *Service {
	return &Service{
		bookRoot: bookRoot,
		accounts: accounts,
		ids:      id.NewGenerator(),
		now:      time.Now,
	}
}

// Read returns all headers and lines. A book without a journal yet reads as empty.
func (s *Service) Read() ([]model.JournalHeader, []model.JournalLine, error) {
	headers, err := readFile(HeadersPath(s.bookRoot), ReadHeaders)
	if err != nil {
		return nil, nil, err
	}
	lines, err := readFile(LinesPath(s.bookRoot), ReadLines)
	if err != nil {
		return nil, nil, err
	}
	if dup := duplicateHeader(headers); dup != "" {
		return nil, nil, fmt.Errorf("reading journal: duplicate header id %q", dup)
	}
	return headers, lines, nil
}

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	out, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return out, nil
}

func duplicateHeader(headers []model.JournalHeader) string {
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		if seen[h.ID] {
			return h.ID
		}
		seen[h.ID] = true
	}
	return ""
}

// Post validates a draft and adds it to the end of the journal. Returns the
// new header ID. Both journal files are replaced together or not at all.
func (s *Service) Post(d Draft) (string, error) {
	if err := ValidateDraft(d, s.accounts); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	headers, lines, err := s.Read()
	if err != nil {
		return "", err
	}

	header, newLines := s.materialize(s.ids.Header(), d)
	if err := s.rewrite(append(headers, header), append(lines, newLines...)); err != nil {
		return "", err
	}
	return header.ID, nil
}

// Amend replaces the date, memo, ref and lines of an existing entry after
// validating the new draft.
func (s *Service) Amend(headerID string, d Draft) error {
	headers, lines, err := s.Read()
	if err != nil {
		return err
	}
	idx := indexOfHeader(headers, headerID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrHeaderNotFound, headerID)
	}
	if err := ValidateDraft(d, s.accounts); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	header, newLines := s.materialize(headerID, d)
	header.CreatedAt = headers[idx].CreatedAt
	headers[idx] = header

	kept := withoutHeader(lines, headerID)
	return s.rewrite(headers, append(kept, newLines...))
}

// Delete removes an entry and all of its lines.
func (s *Service) Delete(headerID string) error {
	headers, lines, err := s.Read()
	if err != nil {
		return err
	}
	idx := indexOfHeader(headers, headerID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrHeaderNotFound, headerID)
	}
	headers = append(headers[:idx], headers[idx+1:]...)
	return s.rewrite(headers, withoutHeader(lines, headerID))
}

func (s *Service) materialize(headerID string, d Draft) (model.JournalHeader, []model.JournalLine) {
	now := s.now().UTC().Truncate(time.Second)
	header := model.JournalHeader{ID: headerID, Date: d.Date, Memo: d.Memo, Ref: d.Ref, CreatedAt: now}
	lines := make([]model.JournalLine, len(d.Lines))
	for i, dl := range d.Lines {
		lines[i] = model.JournalLine{
			ID:        s.ids.Line(),
			HeaderID:  headerID,
			AccountID: dl.AccountID,
			Debit:     dl.Debit,
			Credit:    dl.Credit,
			CreatedAt: now,
		}
	}
	return header, lines
}

// rewrite stages both journal files before replacing either of them.
func (s *Service) rewrite(headers []model.JournalHeader, lines []model.JournalLine) error {
	h, err := stage(HeadersPath(s.bookRoot), func(w io.Writer) error {
		return WriteHeaders(w, headers)
	})
	if err != nil {
		return fmt.Errorf("rewriting headers: %w", err)
	}
	l, err := stage(LinesPath(s.bookRoot), func(w io.Writer) error {
		return WriteLines(w, lines)
	})
	if err != nil {
		h.discard()
		return fmt.Errorf("rewriting lines: %w", err)
	}
	if err := replaceAll(h, l); err != nil {
		return fmt.Errorf("rewriting journal: %w", err)
	}
	return nil
}

func indexOfHeader(headers []model.JournalHeader, headerID string) int {
	for i, h := range headers {
		if h.ID == headerID {
			return i
		}
	}
	return -1
}

func withoutHeader(lines []model.JournalLine, headerID string) []model.JournalLine {
	kept := make([]model.JournalLine, 0, len(lines))
	for _, l := range lines {
		if l.HeaderID != headerID {
			kept = append(kept, l)
		}
	}
	return kept
}

// stagedFile is a fully written temp file waiting to replace path.
type stagedFile struct {
	path string
	tmp  string
}

func (f stagedFile) discard() {
	os.Remove(f.tmp)
}

// stage writes a temp file next to path.
func stage(path string, write func(io.Writer) error) (stagedFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return stagedFile{}, fmt.Errorf("creating journal dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return stagedFile{}, fmt.Errorf("creating temp file: %w", err)
	}
	f := stagedFile{path: path, tmp: tmp.Name()}

	if err := write(tmp); err != nil {
		tmp.Close()
		f.discard()
		return stagedFile{}, err
	}
	if err := tmp.Close(); err != nil {
		f.discard()
		return stagedFile{}, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(f.tmp, 0o644); err != nil {
		f.discard()
		return stagedFile{}, fmt.Errorf("setting permissions: %w", err)
	}
	return f, nil
}

// replaceAll renames staged files into place in order. When a rename fails,
// files already replaced get their previous content back.
func replaceAll(files ...stagedFile) error {
	defer func() {
		for _, f := range files {
			f.discard()
		}
	}()

	type previous struct {
		path    string
		data    []byte
		existed bool
	}
	var done []previous
	for _, f := range files {
		data, err := os.ReadFile(f.path)
		existed := err == nil
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("reading %s: %w", f.path, err)
		} else {
			err = os.Rename(f.tmp, f.path)
		}
		if err == nil {
			done = append(done, previous{path: f.path, data: data, existed: existed})
			continue
		}

		for i := len(done) - 1; i >= 0; i-- {
			p := done[i]
			if p.existed {
				_ = os.WriteFile(p.path, p.data, 0o644)
			} else {
				_ = os.Remove(p.path)
			}
		}
		return fmt.Errorf("replacing %s: %w", f.path, err)
	}
	return nil
}

// writeFileAtomic writes to a temp file next to path and renames it into place.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	f, err := stage(path, write)
	if err != nil {
		return err
	}
	return replaceAll(f)
}
