// Package yaml provides YAML-based project configuration parsing and repository implementations.
package yaml

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/ochairo/variants/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

//go:embed default_project.yml
var defaultProjectYAML []byte

// yamlProject represents the raw variants.yml structure
type yamlProject struct {
	Name           string                       `yaml:"name"`
	Namespace      string                       `yaml:"namespace"`
	ModuleDir      string                       `yaml:"module_dir"`
	SecretsFile    string                       `yaml:"secrets_file"`
	DefaultConfig  yamlDefaultConfig            `yaml:"default_config"`
	BuildTypes     map[string]yamlBuildType     `yaml:"build_types"`
	Flavors        []yamlFlavor                 `yaml:"flavors"`
	SigningConfigs map[string]yamlSigningConfig `yaml:"signing_configs"`
	Splits         yamlSplits                   `yaml:"splits"`
}

type yamlDefaultConfig struct {
	ApplicationID string `yaml:"application_id"`
	VersionName   string `yaml:"version_name"`
	VersionCode   int    `yaml:"version_code"`
	DisplayName   string `yaml:"display_name"`
}

type yamlBuildType struct {
	ApplicationIDSuffix string `yaml:"application_id_suffix"`
	SigningRequired     bool   `yaml:"signing_required"`
}

type yamlFlavor struct {
	Name                 string            `yaml:"name"`
	Source               string            `yaml:"source"`
	ApplicationID        string            `yaml:"application_id"`
	VersionName          string            `yaml:"version_name"`
	DisplayName          string            `yaml:"display_name"`
	Descriptor           yamlDescriptor    `yaml:"descriptor"`
	SigningConfig        string            `yaml:"signing_config"`
	VersionNameSuffixEnv string            `yaml:"version_name_suffix_env"`
	DisplayNameOverrides map[string]string `yaml:"display_name_overrides"`
	BuildConfig          map[string]string `yaml:"build_config"`
}

type yamlDescriptor struct {
	Path             string `yaml:"path"`
	IdentifierPrefix string `yaml:"identifier_prefix"`
	DefaultName      string `yaml:"default_name"`
	NameAttribute    string `yaml:"name_attribute"`
	VersionAttribute string `yaml:"version_attribute"`
}

type yamlSigningConfig struct {
	Properties string `yaml:"properties"`
}

type yamlSplits struct {
	ABI       []string `yaml:"abi"`
	Universal bool     `yaml:"universal"`
}

// Flavor source kinds accepted in variants.yml
const (
	sourceStatic     = "static"
	sourceDescriptor = "descriptor"
)

// ProjectParser parses variants.yml files
type ProjectParser struct{}

// NewProjectParser creates a new YAML parser
func NewProjectParser() *ProjectParser {
	return &ProjectParser{}
}

// ParseFile parses a variants.yml file into a Project entity
func (p *ProjectParser) ParseFile(filePath string) (*entities.Project, error) {
	//nolint:gosec // G304: filePath is the project configuration path
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// ParseDefault parses the built-in project configuration
func (p *ProjectParser) ParseDefault() (*entities.Project, error) {
	return p.Parse(defaultProjectYAML)
}

// Parse parses YAML bytes into a Project entity
func (p *ProjectParser) Parse(data []byte) (*entities.Project, error) {
	var raw yamlProject
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if raw.Name == "" {
		return nil, fmt.Errorf("project must have a name")
	}
	if len(raw.Flavors) == 0 {
		return nil, fmt.Errorf("project must define at least one flavor")
	}

	project := &entities.Project{
		Name:           raw.Name,
		Namespace:      raw.Namespace,
		ModuleDir:      raw.ModuleDir,
		SecretsFile:    raw.SecretsFile,
		VersionCode:    raw.DefaultConfig.VersionCode,
		BuildTypes:     make(map[entities.BuildTypeName]entities.BuildType),
		SigningConfigs: make(map[string]entities.SigningConfigSource),
		Splits: entities.Splits{
			ABIs:      raw.Splits.ABI,
			Universal: raw.Splits.Universal,
		},
	}
	if project.ModuleDir == "" {
		project.ModuleDir = "."
	}

	for name, bt := range raw.BuildTypes {
		btName, err := entities.ParseBuildType(name)
		if err != nil {
			return nil, fmt.Errorf("build_types: %w", err)
		}
		project.BuildTypes[btName] = entities.BuildType{
			Name:                btName,
			ApplicationIDSuffix: bt.ApplicationIDSuffix,
			SigningRequired:     bt.SigningRequired,
		}
	}

	for name, sc := range raw.SigningConfigs {
		if sc.Properties == "" {
			return nil, fmt.Errorf("signing config %s must name a properties file", name)
		}
		project.SigningConfigs[name] = entities.SigningConfigSource{Name: name, PropertiesFile: sc.Properties}
	}

	seen := make(map[string]bool)
	for i, yf := range raw.Flavors {
		flavor, err := convertFlavor(yf, raw)
		if err != nil {
			return nil, fmt.Errorf("flavors[%d]: %w", i, err)
		}
		if seen[flavor.Name] {
			return nil, fmt.Errorf("flavors[%d]: duplicate flavor %s", i, flavor.Name)
		}
		seen[flavor.Name] = true

		if flavor.SigningConfig != "" {
			if _, ok := project.SigningConfigs[flavor.SigningConfig]; !ok {
				return nil, fmt.Errorf("flavor %s: undefined signing config %s", flavor.Name, flavor.SigningConfig)
			}
		}
		project.Flavors = append(project.Flavors, flavor)
	}

	return project, nil
}

func convertFlavor(yf yamlFlavor, raw yamlProject) (entities.Flavor, error) {
	if yf.Name == "" {
		return entities.Flavor{}, fmt.Errorf("flavor must have a name")
	}

	flavor := entities.Flavor{
		Name:                 yf.Name,
		SigningConfig:        yf.SigningConfig,
		VersionNameSuffixEnv: yf.VersionNameSuffixEnv,
		BuildConfigFields:    yf.BuildConfig,
		DisplayNameOverrides: make(map[entities.BuildTypeName]string),
	}

	for name, label := range yf.DisplayNameOverrides {
		btName, err := entities.ParseBuildType(name)
		if err != nil {
			return entities.Flavor{}, fmt.Errorf("flavor %s: display_name_overrides: %w", yf.Name, err)
		}
		flavor.DisplayNameOverrides[btName] = label
	}

	switch yf.Source {
	case sourceStatic, "":
		src := entities.StaticSource{
			ApplicationID: firstNonEmpty(yf.ApplicationID, raw.DefaultConfig.ApplicationID),
			VersionName:   firstNonEmpty(yf.VersionName, raw.DefaultConfig.VersionName),
			DisplayName:   firstNonEmpty(yf.DisplayName, raw.DefaultConfig.DisplayName, raw.Name),
		}
		if src.ApplicationID == "" {
			return entities.Flavor{}, fmt.Errorf("flavor %s: static flavor needs an application_id", yf.Name)
		}
		flavor.Source = src
	case sourceDescriptor:
		if yf.Descriptor.Path == "" {
			return entities.Flavor{}, fmt.Errorf("flavor %s: descriptor flavor needs descriptor.path", yf.Name)
		}
		flavor.Source = entities.DescriptorSource{
			Path:             yf.Descriptor.Path,
			IdentifierPrefix: yf.Descriptor.IdentifierPrefix,
			DefaultName:      yf.Descriptor.DefaultName,
			NameAttribute:    yf.Descriptor.NameAttribute,
			VersionAttribute: yf.Descriptor.VersionAttribute,
		}
	default:
		return entities.Flavor{}, fmt.Errorf("flavor %s: unknown source %q (want %s or %s)",
			yf.Name, yf.Source, sourceStatic, sourceDescriptor)
	}

	return flavor, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
