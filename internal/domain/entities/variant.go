package entities

// DefaultDisplayName is used when neither configuration nor descriptor supplies a name
const DefaultDisplayName = "Application"

// DefaultVersionName is used when no version is configured or found in a descriptor
const DefaultVersionName = "1.0"

// VariantIdentity is the resolved identity of one application variant
type VariantIdentity struct {
	ApplicationID string `json:"application_id" yaml:"application_id"`
	DisplayName   string `json:"display_name" yaml:"display_name"`
	VersionName   string `json:"version_name" yaml:"version_name"`
}

// BuildVariant is the fully evaluated configuration of one flavor and build type
type BuildVariant struct {
	Name           string            `json:"name" yaml:"name"`
	Flavor         string            `json:"flavor" yaml:"flavor"`
	BuildType      BuildTypeName     `json:"build_type" yaml:"build_type"`
	Identity       VariantIdentity   `json:"identity" yaml:"identity"`
	VersionCode    int               `json:"version_code" yaml:"version_code"`
	BuildConfig    map[string]string `json:"build_config,omitempty" yaml:"build_config,omitempty"`
	ResourceValues map[string]string `json:"resource_values,omitempty" yaml:"resource_values,omitempty"`
	Signing        SigningStatus     `json:"signing" yaml:"signing"`
	Outputs        []ArtifactOutput  `json:"outputs" yaml:"outputs"`
}

// ArtifactOutput is one output file produced for a variant (one per ABI split)
type ArtifactOutput struct {
	Split    string `json:"split" yaml:"split"`
	DirTag   string `json:"dir_tag" yaml:"dir_tag"`
	FileName string `json:"file_name" yaml:"file_name"`
}

// SigningStatus reports whether a signing configuration was applied to a variant
type SigningStatus struct {
	Config  string `json:"config,omitempty" yaml:"config,omitempty"`
	Applied bool   `json:"applied" yaml:"applied"`
	Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`
}
