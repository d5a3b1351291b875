// Package gpg opens OpenPGP key stores and signs release artifacts with them.
package gpg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"

	"github.com/ochairo/variants/internal/domain/entities"
)

// messageBlockType is the armor type of an encrypted OpenPGP message
const messageBlockType = "PGP MESSAGE"

// maxStoreSize limits how much of a key store is read
const maxStoreSize = 10 * 1024 * 1024

// Keystore is an unlocked OpenPGP key store with one selected signing key.
//
// The store file is an OpenPGP keyring, either plain (armored or binary) or wrapped
// in an armored, symmetrically encrypted message opened with the store password.
// The key alias selects the signing entity by user id name, e-mail or key id, and
// the key password unlocks its private key material.
type Keystore struct {
	keyring openpgp.EntityList
	signer  *openpgp.Entity
}

// OpenKeystore loads and unlocks the store referenced by a signing configuration
func OpenKeystore(cfg *entities.SigningConfig) (*Keystore, error) {
	//nolint:gosec // G304: store file comes from the signing configuration
	f, err := os.Open(cfg.StoreFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open key store: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxStoreSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read key store: %w", err)
	}

	keyring, err := readKeyring(data, cfg.StorePassword, true)
	if err != nil {
		return nil, fmt.Errorf("key store %s: %w", cfg.StoreFile, err)
	}

	signer, err := selectEntity(keyring, cfg.KeyAlias)
	if err != nil {
		return nil, fmt.Errorf("key store %s: %w", cfg.StoreFile, err)
	}

	if err := unlock(signer, cfg.KeyPassword); err != nil {
		return nil, fmt.Errorf("key store %s: %w", cfg.StoreFile, err)
	}

	return &Keystore{keyring: keyring, signer: signer}, nil
}

func readKeyring(data []byte, storePassword string, allowEncrypted bool) (openpgp.EntityList, error) {
	block, err := armor.Decode(bytes.NewReader(data))
	if err != nil {
		// Not armored: try a binary keyring
		keyring, binErr := openpgp.ReadKeyRing(bytes.NewReader(data))
		if binErr != nil {
			return nil, fmt.Errorf("failed to read keyring: %w", binErr)
		}
		return keyring, nil
	}

	switch block.Type {
	case openpgp.PrivateKeyType, openpgp.PublicKeyType:
		keyring, err := openpgp.ReadKeyRing(block.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read keyring: %w", err)
		}
		return keyring, nil
	case messageBlockType:
		if !allowEncrypted {
			return nil, errors.New("nested encrypted key store")
		}
		inner, err := decryptStore(block.Body, storePassword)
		if err != nil {
			return nil, err
		}
		return readKeyring(inner, "", false)
	default:
		return nil, fmt.Errorf("unexpected armor block %q", block.Type)
	}
}

func decryptStore(body io.Reader, storePassword string) ([]byte, error) {
	if storePassword == "" {
		return nil, fmt.Errorf("key store is encrypted but %s is empty", entities.StorePassword)
	}

	attempted := false
	prompt := func(_ []openpgp.Key, symmetric bool) ([]byte, error) {
		if !symmetric || attempted {
			return nil, fmt.Errorf("wrong %s", entities.StorePassword)
		}
		attempted = true
		return []byte(storePassword), nil
	}

	md, err := openpgp.ReadMessage(body, openpgp.EntityList{}, prompt, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt key store: %w", err)
	}

	inner, err := io.ReadAll(io.LimitReader(md.UnverifiedBody, maxStoreSize))
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt key store: %w", err)
	}
	return inner, nil
}

func selectEntity(keyring openpgp.EntityList, alias string) (*openpgp.Entity, error) {
	var candidates []*openpgp.Entity
	for _, e := range keyring {
		if e.PrivateKey != nil {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return nil, errors.New("no private keys in key store")
	}

	if alias == "" {
		if len(candidates) == 1 {
			return candidates[0], nil
		}
		return nil, fmt.Errorf("%s is empty and the key store holds %d private keys", entities.KeyAlias, len(candidates))
	}

	for _, e := range candidates {
		if matchesAlias(e, alias) {
			return e, nil
		}
	}
	return nil, fmt.Errorf("no private key matches %s %q", entities.KeyAlias, alias)
}

func matchesAlias(e *openpgp.Entity, alias string) bool {
	keyID := e.PrimaryKey.KeyIdString()
	fingerprint := fmt.Sprintf("%X", e.PrimaryKey.Fingerprint)
	if strings.EqualFold(alias, keyID) || strings.EqualFold(alias, fingerprint) {
		return true
	}

	for name, identity := range e.Identities {
		if name == alias {
			return true
		}
		if identity.UserId != nil && (identity.UserId.Name == alias || identity.UserId.Email == alias) {
			return true
		}
	}
	return false
}

func unlock(e *openpgp.Entity, keyPassword string) error {
	if e.PrivateKey.Encrypted {
		if keyPassword == "" {
			return fmt.Errorf("private key is encrypted but %s is empty", entities.KeyPassword)
		}
		if err := e.PrivateKey.Decrypt([]byte(keyPassword)); err != nil {
			return fmt.Errorf("failed to unlock private key: %w", err)
		}
	}

	for _, sub := range e.Subkeys {
		if sub.PrivateKey == nil || !sub.PrivateKey.Encrypted {
			continue
		}
		if err := sub.PrivateKey.Decrypt([]byte(keyPassword)); err != nil {
			return fmt.Errorf("failed to unlock subkey: %w", err)
		}
	}
	return nil
}

// SignerKeyID returns the key id of the selected signing key
func (k *Keystore) SignerKeyID() string {
	return k.signer.PrimaryKey.KeyIdString()
}

// DetachSign writes an armored detached signature of message to w
func (k *Keystore) DetachSign(w io.Writer, message io.Reader) error {
	if err := openpgp.ArmoredDetachSign(w, k.signer, message, nil); err != nil {
		return fmt.Errorf("failed to sign: %w", err)
	}
	return nil
}

// VerifyFile verifies a detached signature (armored or binary) against the store's keys
func (k *Keystore) VerifyFile(filePath, sigPath string) error {
	//nolint:gosec // G304: sigPath is the signature written next to the artifact
	sigData, err := os.ReadFile(sigPath)
	if err != nil {
		return fmt.Errorf("failed to read signature file: %w", err)
	}

	//nolint:gosec // G304: filePath is the artifact being verified
	dataFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open data file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer dataFile.Close()

	if bytes.HasPrefix(sigData, []byte("-----BEGIN PGP SIGNATURE")) {
		_, err = openpgp.CheckArmoredDetachedSignature(k.keyring, dataFile, bytes.NewReader(sigData), nil)
	} else {
		_, err = openpgp.CheckDetachedSignature(k.keyring, dataFile, bytes.NewReader(sigData), nil)
	}
	if err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}

// SignatureExtension is appended to an artifact name to form its detached signature
const SignatureExtension = ".asc"

// Signer implements gateways.ArtifactSigner and gateways.SignatureVerifier
// with detached OpenPGP signatures
type Signer struct{}

// NewSigner creates a new signer
func NewSigner() *Signer {
	return &Signer{}
}

// Sign writes artifactPath + ".asc" signed with the key selected by cfg
func (s *Signer) Sign(_ context.Context, artifactPath string, cfg *entities.SigningConfig) (string, error) {
	if cfg == nil {
		return "", errors.New("no signing configuration")
	}

	store, err := OpenKeystore(cfg)
	if err != nil {
		return "", err
	}

	//nolint:gosec // G304: artifactPath is the published artifact
	artifact, err := os.Open(artifactPath)
	if err != nil {
		return "", fmt.Errorf("failed to open artifact: %w", err)
	}
	//nolint:errcheck // Defer close
	defer artifact.Close()

	sigPath := artifactPath + SignatureExtension
	//nolint:gosec // G304: signature is written next to the artifact
	out, err := os.OpenFile(sigPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create signature file: %w", err)
	}

	if err := store.DetachSign(out, artifact); err != nil {
		_ = out.Close()
		//nolint:errcheck // Best-effort cleanup of the partial signature
		os.Remove(sigPath)
		return "", err
	}
	if err := out.Close(); err != nil {
		//nolint:errcheck // Best-effort cleanup of the partial signature
		os.Remove(sigPath)
		return "", fmt.Errorf("failed to write signature file: %w", err)
	}

	return sigPath, nil
}

// Verify checks artifactPath + ".asc" against the keys of the store named by cfg
func (s *Signer) Verify(_ context.Context, artifactPath string, cfg *entities.SigningConfig) error {
	sigPath := artifactPath + SignatureExtension
	if _, err := os.Stat(sigPath); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", entities.ErrSignatureNotFound, sigPath)
	}
	if cfg == nil {
		return errors.New("no signing configuration")
	}

	store, err := OpenKeystore(cfg)
	if err != nil {
		return err
	}
	return store.VerifyFile(artifactPath, sigPath)
}
