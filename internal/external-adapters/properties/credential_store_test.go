package properties

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStore_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystore.properties")
	content := `# signing
keyAlias=release
keyPassword=key-secret
storeFile=keys/release.asc
storePassword=store-secret
appCenterKey=abc123
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	result, err := NewCredentialStore().Load(path)
	require.NoError(t, err)

	assert.True(t, result.Found)
	assert.Equal(t, path, result.Source)
	assert.Equal(t, "release", result.Credentials.KeyAlias)
	assert.Equal(t, "key-secret", result.Credentials.KeyPassword)
	assert.Equal(t, "keys/release.asc", result.Credentials.StoreFile)
	assert.Equal(t, "store-secret", result.Credentials.StorePassword)
	assert.Equal(t, map[string]string{"appCenterKey": "abc123"}, result.Credentials.Extra)
}

func TestCredentialStore_MissingFile(t *testing.T) {
	result, err := NewCredentialStore().Load(filepath.Join(t.TempDir(), "keystore.properties"))

	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Empty(t, result.Credentials.StoreFile)
}

func TestCredentialStore_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystore.properties")
	require.NoError(t, os.WriteFile(path, []byte("keyAlias=release\n"), 0600))

	result, err := NewCredentialStore().Load(path)
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Empty(t, result.Credentials.StoreFile)
}

func TestCredentialStore_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystore.properties")
	require.NoError(t, os.WriteFile(path, []byte("storePassword=\\uXYZ1\n"), 0600))

	_, err := NewCredentialStore().Load(path)
	assert.Error(t, err)
}

func TestCredentialStore_Unreadable(t *testing.T) {
	// A directory in place of the file cannot be parsed
	path := filepath.Join(t.TempDir(), "keystore.properties")
	require.NoError(t, os.Mkdir(path, 0750))

	_, err := NewCredentialStore().Load(path)
	assert.Error(t, err)
}

func TestCredentialStore_EscapedPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keystore.properties")
	require.NoError(t, os.WriteFile(path, []byte("keyPassword=p\\uD83D\\uDE00w\nstorePassword=${literal}\n"), 0600))

	result, err := NewCredentialStore().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "p\U0001F600w", result.Credentials.KeyPassword)
	assert.Equal(t, "${literal}", result.Credentials.StorePassword)
}
