package out

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"jadwal/internal/modules/reminder/domain"
	reminderout "jadwal/internal/modules/reminder/port/out"
)

// FileManifestStore reads notifier plugin manifests. The file is a list of
// manifests in JSON, or YAML when it ends in .yaml/.yml. Relative binaries
// resolve against the data directory.
type FileManifestStore struct {
	dataPath string
	path     string
}

func NewFileManifestStore(dataPath, manifestPath string) reminderout.ManifestStore {
	return &FileManifestStore{dataPath: dataPath, path: manifestPath}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read plugin manifests: %w", err)
	}

	manifests, err := decodeManifests(s.path, raw)
	if err != nil {
		return nil, fmt.Errorf("decode plugin manifests %s: %w", filepath.Base(s.path), err)
	}

	seen := make(map[string]struct{}, len(manifests))
	for i := range manifests {
		m := &manifests[i]
		if _, dup := seen[m.Name]; dup {
			return nil, fmt.Errorf("plugin %q is listed twice", m.Name)
		}
		seen[m.Name] = struct{}{}
		if m.Binary != "" && !filepath.IsAbs(m.Binary) {
			m.Binary = filepath.Clean(filepath.Join(s.dataPath, m.Binary))
		}
	}
	return manifests, nil
}

func decodeManifests(path string, raw []byte) ([]domain.Manifest, error) {
	var manifests []domain.Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&manifests); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&manifests); err != nil {
			return nil, err
		}
	}
	return manifests, nil
}
