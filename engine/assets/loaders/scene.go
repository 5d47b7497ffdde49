package loaders

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/arpuzzle/engine/core"
	"github.com/spaghettifunk/arpuzzle/engine/resources"
)

// SceneLoader reads TOML scene descriptions (*.scn).
type SceneLoader struct{}

func (sl *SceneLoader) Load(path string) (*resources.Resource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &resources.Resource{
		Name:     cfg.Name,
		FullPath: path,
		Type:     resources.ResourceTypeScene,
		DataSize: uint64(len(data)),
		Data:     cfg,
	}, nil
}

func (sl *SceneLoader) Unload(res *resources.Resource) error {
	if res == nil {
		return nil
	}
	res.Data = nil
	res.DataSize = 0
	return nil
}

// ParseScene decodes and validates a scene description.
func ParseScene(data []byte) (*resources.SceneConfig, error) {
	cfg := &resources.SceneConfig{}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, err
	}

	if err := validateScene(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateScene(cfg *resources.SceneConfig) error {
	if len(cfg.Meshes) == 0 {
		return core.ErrEmptyScene
	}
	for i, m := range cfg.Meshes {
		if m.Name == "" {
			return fmt.Errorf("mesh %d: name is required", i)
		}
		for axis := 0; axis < 3; axis++ {
			if m.Min[axis] > m.Max[axis] {
				return fmt.Errorf("mesh %s: min is greater than max on axis %d", m.Name, axis)
			}
		}
	}
	return nil
}
