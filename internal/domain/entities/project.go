package entities

// UniversalSplit is the split tag of the artifact containing every ABI
const UniversalSplit = "universal"

// Project is the static configuration of a multi-flavor project
type Project struct {
	Name string

	// RootDir is the project root; credentials and store files resolve against it
	RootDir string

	// ModuleDir is the application module, relative to RootDir; descriptors resolve against it
	ModuleDir string

	// SecretsFile is an optional properties file, relative to RootDir, supplying resource secrets
	SecretsFile string

	Namespace   string
	VersionCode int

	Flavors        []Flavor
	BuildTypes     map[BuildTypeName]BuildType
	SigningConfigs map[string]SigningConfigSource
	Splits         Splits
}

// SigningConfigSource points a named signing configuration at its properties file
type SigningConfigSource struct {
	Name string
	// PropertiesFile is relative to the project root
	PropertiesFile string
}

// Splits describes the per-architecture outputs of every variant
type Splits struct {
	ABIs      []string
	Universal bool
}

// Tags returns the split tags in output order; a project without splits has one unnamed output
func (s Splits) Tags() []string {
	tags := make([]string, 0, len(s.ABIs)+1)
	tags = append(tags, s.ABIs...)
	if s.Universal || len(s.ABIs) == 0 {
		tags = append(tags, UniversalSplit)
	}
	return tags
}

// Flavor looks up a flavor by name
func (p *Project) Flavor(name string) (Flavor, error) {
	for _, f := range p.Flavors {
		if f.Name == name {
			return f, nil
		}
	}
	return Flavor{}, &UnknownError{Kind: ErrUnknownFlavor, Name: name}
}

// BuildType returns the settings of a build type, defaulting to no overrides
func (p *Project) BuildType(name BuildTypeName) BuildType {
	if bt, ok := p.BuildTypes[name]; ok {
		bt.Name = name
		return bt
	}
	return BuildType{Name: name}
}
