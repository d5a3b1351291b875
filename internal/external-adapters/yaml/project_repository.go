package yaml

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ochairo/variants/internal/domain/entities"
	"github.com/ochairo/variants/internal/domain/interfaces"
)

// DefaultConfigFile is looked up at the project root when no config path is given
const DefaultConfigFile = "variants.yml"

// ProjectRepository implements repositories.ProjectRepository using a YAML file
type ProjectRepository struct {
	rootDir    string
	configPath string
	parser     *ProjectParser
	logger     interfaces.Logger
}

// NewProjectRepository creates a repository for the project at rootDir.
// An empty configPath means rootDir/variants.yml, falling back to the built-in project.
func NewProjectRepository(rootDir, configPath string, logger interfaces.Logger) *ProjectRepository {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &ProjectRepository{
		rootDir:    rootDir,
		configPath: configPath,
		parser:     NewProjectParser(),
		logger:     logger.Named("config"),
	}
}

// LoadProject reads the project configuration
func (r *ProjectRepository) LoadProject(_ context.Context) (*entities.Project, error) {
	var (
		project *entities.Project
		err     error
	)

	path := r.configPath
	switch {
	case path != "":
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.rootDir, path)
		}
		project, err = r.parser.ParseFile(path)
	default:
		path = filepath.Join(r.rootDir, DefaultConfigFile)
		if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
			r.logger.Info("no project configuration found, using built-in defaults", interfaces.F("path", path))
			project, err = r.parser.ParseDefault()
		} else {
			project, err = r.parser.ParseFile(path)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load project configuration: %w", err)
	}

	project.RootDir = r.rootDir
	return project, nil
}
