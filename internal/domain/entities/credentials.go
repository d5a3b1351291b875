package entities

// Recognized credentials property keys
const (
	KeyAlias      = "keyAlias"
	KeyPassword   = "keyPassword"
	StoreFile     = "storeFile"
	StorePassword = "storePassword"
	AppCenterKey  = "appCenterKey"
)

// Credentials references signing key material. Empty fields are absent.
type Credentials struct {
	KeyAlias      string
	KeyPassword   string
	StoreFile     string
	StorePassword string

	// Extra holds every other property of the credentials file
	Extra map[string]string
}

// CredentialsResult distinguishes a loaded credentials file from an absent one
type CredentialsResult struct {
	Found       bool
	Source      string
	Credentials Credentials
}

// SigningConfig is a signing configuration ready to be applied
type SigningConfig struct {
	Name string
	// StoreFile is resolved against the project root
	StoreFile     string
	StorePassword string
	KeyAlias      string
	KeyPassword   string
}

// SigningPolicy decides whether missing credentials are fatal
type SigningPolicy struct {
	Required bool
}
