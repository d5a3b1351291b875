package entities

// Flavor is a named build configuration branch of the project
type Flavor struct {
	Name   string
	Source FlavorSource

	// SigningConfig names an entry of Project.SigningConfigs; empty means unsigned
	SigningConfig string

	// VersionNameSuffixEnv names an environment variable appended to the version name
	VersionNameSuffixEnv string

	// DisplayNameOverrides replaces the display name for specific build types
	DisplayNameOverrides map[BuildTypeName]string

	// BuildConfigFields are emitted verbatim into the generated build configuration
	BuildConfigFields map[string]string
}

// FlavorSource is where a flavor takes its identity from.
// The set of implementations is closed: StaticSource and DescriptorSource.
type FlavorSource interface {
	flavorSource()
}

// StaticSource takes the identity from static configuration constants
type StaticSource struct {
	ApplicationID string
	VersionName   string
	DisplayName   string
}

func (StaticSource) flavorSource() {}

// DescriptorSource takes the identity from an external descriptor file
type DescriptorSource struct {
	// Path is relative to the project module directory
	Path             string
	IdentifierPrefix string
	DefaultName      string
	NameAttribute    string
	VersionAttribute string
}

func (DescriptorSource) flavorSource() {}

// Descriptor attribute names recognized by default
const (
	DefaultNameAttribute    = "Name"
	DefaultVersionAttribute = "Version"
)

// BuildTypeName identifies a build type
type BuildTypeName string

// Known build types
const (
	BuildTypeDebug   BuildTypeName = "debug"
	BuildTypeRelease BuildTypeName = "release"
)

// BuildTypes lists the known build types in evaluation order
var BuildTypes = []BuildTypeName{BuildTypeDebug, BuildTypeRelease}

// ParseBuildType validates a build type name
func ParseBuildType(name string) (BuildTypeName, error) {
	switch BuildTypeName(name) {
	case BuildTypeDebug:
		return BuildTypeDebug, nil
	case BuildTypeRelease:
		return BuildTypeRelease, nil
	default:
		return "", &UnknownError{Kind: ErrUnknownBuildType, Name: name}
	}
}

// BuildType holds the per-build-type settings
type BuildType struct {
	Name                BuildTypeName
	ApplicationIDSuffix string
	SigningRequired     bool
}
