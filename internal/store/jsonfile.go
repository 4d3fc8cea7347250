package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"intel-archive/internal/models"
)

const (
	agentsFile = "agents.json"
	peopleFile = "people.json"
	intelFile  = "inteldata.json"
)

// FileStore persists each collection as a JSON array in its own file under a
// data directory. Saves replace the whole file atomically (write to a temp
// file in the same directory, then rename), so readers never observe a
// partially written collection.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir, creating the directory if
// needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) Agents() ([]models.Agent, error) {
	return readCollection[models.Agent](filepath.Join(fs.dir, agentsFile))
}

func (fs *FileStore) SaveAgents(agents []models.Agent) error {
	return writeCollection(filepath.Join(fs.dir, agentsFile), agents)
}

func (fs *FileStore) People() ([]models.Person, error) {
	return readCollection[models.Person](filepath.Join(fs.dir, peopleFile))
}

func (fs *FileStore) SavePeople(people []models.Person) error {
	return writeCollection(filepath.Join(fs.dir, peopleFile), people)
}

// Intel loads the report collection. Older deployments stored the file as
// {"results": [...]} rather than a bare array; both shapes are accepted.
func (fs *FileStore) Intel() ([]models.Intel, error) {
	path := filepath.Join(fs.dir, intelFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []models.Intel{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", intelFile, err)
	}

	var items []models.Intel
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}
	var wrapped struct {
		Results []models.Intel `json:"results"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", intelFile, err)
	}
	if wrapped.Results == nil {
		return []models.Intel{}, nil
	}
	return wrapped.Results, nil
}

func (fs *FileStore) SaveIntel(items []models.Intel) error {
	return writeCollection(filepath.Join(fs.dir, intelFile), items)
}

// readCollection loads a JSON-array collection. A missing file reads as an
// empty collection; the first save creates it.
func readCollection[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// writeCollection replaces a collection file atomically.
func writeCollection[T any](path string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", filepath.Base(path), err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions on %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
