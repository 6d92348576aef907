// Package jsonfile keeps tasks and tags in a single JSON document. Every
// mutation rewrites the document through a temporary file and a rename.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/spf13/afero"
)

type taskRecord struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Tags        []int64    `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DueDate     string     `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type tagRecord struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type document struct {
	NextTaskID int64        `json:"next_task_id"`
	NextTagID  int64        `json:"next_tag_id"`
	Tasks      []taskRecord `json:"tasks"`
	Tags       []tagRecord  `json:"tags"`
}

// Store owns the document and serializes access to it.
type Store struct {
	mu   sync.Mutex
	fs   afero.Fs
	path string

	nextTaskID int64
	nextTagID  int64
	tasks      map[int64]taskRecord
	tags       map[int64]tagRecord
}

// Open loads the document at path. A missing file is an empty store.
func Open(fs afero.Fs, path string) (*Store, error) {
	s := &Store{
		fs:         fs,
		path:       path,
		nextTaskID: 1,
		nextTagID:  1,
		tasks:      make(map[int64]taskRecord),
		tags:       make(map[int64]tagRecord),
	}
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for _, t := range doc.Tasks {
		s.tasks[t.ID] = t
		s.nextTaskID = max(s.nextTaskID, t.ID+1)
	}
	for _, t := range doc.Tags {
		s.tags[t.ID] = t
		s.nextTagID = max(s.nextTagID, t.ID+1)
	}
	s.nextTaskID = max(s.nextTaskID, doc.NextTaskID)
	s.nextTagID = max(s.nextTagID, doc.NextTagID)
	return s, nil
}

// Path returns the document location.
func (s *Store) Path() string { return s.path }

// Tasks returns the task repository view.
func (s *Store) Tasks() *TaskRepository { return &TaskRepository{store: s} }

// Tags returns the tag repository view.
func (s *Store) Tags() *TagRepository { return &TagRepository{store: s} }

// mutate runs fn under the lock and persists the result. On any failure the
// in-memory state is rolled back.
func (s *Store) mutate(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, tags := maps.Clone(s.tasks), maps.Clone(s.tags)
	nextTask, nextTag := s.nextTaskID, s.nextTagID
	rollback := func() {
		s.tasks, s.tags = tasks, tags
		s.nextTaskID, s.nextTagID = nextTask, nextTag
	}

	if err := fn(); err != nil {
		rollback()
		return err
	}
	if err := s.flush(); err != nil {
		rollback()
		return err
	}
	return nil
}

func (s *Store) flush() error {
	doc := document{
		NextTaskID: s.nextTaskID,
		NextTagID:  s.nextTagID,
		Tasks:      make([]taskRecord, 0, len(s.tasks)),
		Tags:       make([]tagRecord, 0, len(s.tags)),
	}
	for _, id := range slices.Sorted(maps.Keys(s.tasks)) {
		doc.Tasks = append(doc.Tasks, s.tasks[id])
	}
	for _, id := range slices.Sorted(maps.Keys(s.tags)) {
		doc.Tags = append(doc.Tags, s.tags[id])
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) read(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}
