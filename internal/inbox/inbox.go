package inbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const archivedDir = "archived"

// ErrNotFound is returned when no submission has the requested id.
var ErrNotFound = errors.New("submission not found")

// Inbox is a directory of submission files with an archived/ subdirectory.
// Writes go through a temp file and a rename so readers never see partial
// files.
type Inbox struct {
	dir string
	now func() time.Time
}

// Open creates the inbox directories if needed.
func Open(dir string) (*Inbox, error) {
	if err := os.MkdirAll(filepath.Join(dir, archivedDir), 0o755); err != nil {
		return nil, fmt.Errorf("create inbox %s: %w", dir, err)
	}
	return &Inbox{dir: dir, now: time.Now}, nil
}

// Dir returns the inbox root.
func (in *Inbox) Dir() string {
	return in.dir
}

// Push stores s. An empty ID is filled with a new UUID and a zero
// ReceivedAt with the current time.
func (in *Inbox) Push(s Submission) (Submission, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.ReceivedAt.IsZero() {
		s.ReceivedAt = in.now().UTC()
	}
	s.Status = StatusNew
	if err := writeAtomic(in.dir, s); err != nil {
		return Submission{}, err
	}
	return s, nil
}

// List returns stored submissions, newest first. Archived ones are included
// only when all is true. Malformed files are skipped.
func (in *Inbox) List(all bool) ([]Submission, error) {
	subs, err := readDir(in.dir)
	if err != nil {
		return nil, err
	}
	if all {
		archived, err := readDir(filepath.Join(in.dir, archivedDir))
		if err != nil {
			return nil, err
		}
		subs = append(subs, archived...)
	}
	sort.Slice(subs, func(i, j int) bool {
		if !subs[i].ReceivedAt.Equal(subs[j].ReceivedAt) {
			return subs[i].ReceivedAt.After(subs[j].ReceivedAt)
		}
		return subs[i].ID < subs[j].ID
	})
	return subs, nil
}

// Get returns a submission by id from either the inbox or the archive.
func (in *Inbox) Get(id string) (*Submission, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	for _, dir := range []string{in.dir, filepath.Join(in.dir, archivedDir)} {
		s, err := readFile(filepath.Join(dir, id+".json"))
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// Archive moves a submission into archived/.
func (in *Inbox) Archive(id string) error {
	if !validID(id) {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	src := filepath.Join(in.dir, id+".json")
	s, err := readFile(src)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("read submission %s: %w", id, err)
	}

	s.Status = StatusArchived
	if err := writeAtomic(filepath.Join(in.dir, archivedDir), *s); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove original submission: %w", err)
	}
	return nil
}

// Count returns the number of new and archived submissions.
func (in *Inbox) Count() (Counts, error) {
	fresh, err := readDir(in.dir)
	if err != nil {
		return Counts{}, err
	}
	archived, err := readDir(filepath.Join(in.dir, archivedDir))
	if err != nil {
		return Counts{}, err
	}
	return Counts{New: len(fresh), Archived: len(archived)}, nil
}

func writeAtomic(dir string, s Submission) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, filepath.Join(dir, s.ID+".json")); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename to final path: %w", err)
	}
	return nil
}

func readDir(dir string) ([]Submission, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read inbox dir %s: %w", dir, err)
	}
	var out []Submission
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".tmp-") {
			continue
		}
		s, err := readFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func readFile(path string) (*Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Submission
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &s, nil
}

// validID rejects ids that could escape the inbox directory.
func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && id != "." && id != ".."
}
