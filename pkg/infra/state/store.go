package state

import (
	"bytes"
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relwatch/pkg/domain/interfaces"
	"github.com/m-mizutani/relwatch/pkg/domain/model"
	"github.com/m-mizutani/relwatch/pkg/domain/types"
	"gopkg.in/yaml.v3"
)

// document is the top-level shape of the state file. It is the durable
// cross-run contract and must stay parseable by future runs.
type document struct {
	States model.StateMap `yaml:"states"`
}

// Store persists the state map as a YAML file.
type Store struct {
	path string
}

// New creates a state store backed by the file at path.
func New(path string) interfaces.StateStore {
	return &Store{path: path}
}

// Load reads the state file. A missing file is a normal first run and
// yields an empty map. Any other failure is fatal for the pass: aborting
// beats silently discarding history.
func (s *Store) Load() (model.StateMap, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.StateMap{}, nil
		}
		return nil, goerr.Wrap(err, "failed to read state file",
			goerr.V("path", s.path), goerr.T(types.ErrTagStateCorrupt))
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse state file",
			goerr.V("path", s.path), goerr.T(types.ErrTagStateCorrupt))
	}
	if doc.States == nil {
		doc.States = model.StateMap{}
	}

	return doc.States, nil
}

// Save serializes the whole map and replaces the file content. The write
// goes to a temporary file first and is moved into place, so a crash never
// leaves a half-written state file behind.
func (s *Store) Save(states model.StateMap) error {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(document{States: states}); err != nil {
		return goerr.Wrap(err, "failed to serialize state",
			goerr.V("path", s.path), goerr.T(types.ErrTagStatePersist))
	}
	if err := enc.Close(); err != nil {
		return goerr.Wrap(err, "failed to serialize state",
			goerr.V("path", s.path), goerr.T(types.ErrTagStatePersist))
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return goerr.Wrap(err, "failed to write state file",
			goerr.V("path", tmp), goerr.T(types.ErrTagStatePersist))
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return goerr.Wrap(err, "failed to replace state file",
			goerr.V("path", s.path), goerr.T(types.ErrTagStatePersist))
	}

	return nil
}
