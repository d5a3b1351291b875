package services

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ochairo/variants/internal/domain/entities"
)

// ReleaseStatus represents the readiness status of a variant for release
type ReleaseStatus string

// Release validation statuses
const (
	StatusReady            ReleaseStatus = "ready"
	StatusNoArtifacts      ReleaseStatus = "no_artifacts"
	StatusSplitMismatch    ReleaseStatus = "split_mismatch"
	StatusUnexpectedSplits ReleaseStatus = "unexpected_splits"
	StatusUnsigned         ReleaseStatus = "unsigned"
)

// ReleaseValidation contains the validation result for one build variant
type ReleaseValidation struct {
	Status           ReleaseStatus
	ExpectedSplits   []string
	AvailableSplits  []string
	MissingSplits    []string
	UnexpectedSplits []string
}

// IsReady returns true if every expected artifact is present and nothing else is
func (rv *ReleaseValidation) IsReady() bool {
	return rv.Status == StatusReady
}

// ErrorMessage returns a human-readable error message if not ready
func (rv *ReleaseValidation) ErrorMessage() string {
	switch rv.Status {
	case StatusReady:
		return ""
	case StatusNoArtifacts:
		return fmt.Sprintf("No artifacts found (expected: %d splits)", len(rv.ExpectedSplits))
	case StatusSplitMismatch:
		msg := fmt.Sprintf("Split count mismatch (expected: %d, have: %d)", len(rv.ExpectedSplits), len(rv.AvailableSplits))
		if len(rv.MissingSplits) > 0 {
			msg += "\n   Missing: " + strings.Join(rv.MissingSplits, ", ")
		}
		if len(rv.UnexpectedSplits) > 0 {
			msg += "\n   Unexpected: " + strings.Join(rv.UnexpectedSplits, ", ")
		}
		return msg
	case StatusUnexpectedSplits:
		return "Unexpected splits found: " + strings.Join(rv.UnexpectedSplits, ", ")
	case StatusUnsigned:
		return "Variant requires signing but no signing configuration was applied"
	default:
		return "Unknown status"
	}
}

// ReleaseService checks that the artifacts of a variant are complete before release
type ReleaseService struct{}

// NewReleaseService creates a new release service
func NewReleaseService() *ReleaseService {
	return &ReleaseService{}
}

// ValidateRelease compares the outputs planned for variant with the artifact files found
func (s *ReleaseService) ValidateRelease(projectName string, variant entities.BuildVariant, artifactPaths []string) *ReleaseValidation {
	validation := &ReleaseValidation{}

	expectedByName := make(map[string]string, len(variant.Outputs))
	for _, out := range variant.Outputs {
		validation.ExpectedSplits = append(validation.ExpectedSplits, out.Split)
		expectedByName[out.FileName] = out.Split
	}

	// Every file of this variant shares the name up to the split tag
	prefix := strings.TrimSuffix(
		ArtifactName(projectName, variant.Identity.VersionName, DirTag(variant.Flavor, string(variant.BuildType))),
		ArtifactExtension) + "-"

	available := make(map[string]bool)
	for _, path := range artifactPaths {
		base := filepath.Base(path)
		if !strings.HasSuffix(base, ArtifactExtension) {
			continue
		}
		if split, ok := expectedByName[base]; ok {
			available[split] = true
			continue
		}
		if strings.HasPrefix(base, prefix) {
			extra := strings.TrimSuffix(strings.TrimPrefix(base, prefix), ArtifactExtension)
			validation.UnexpectedSplits = append(validation.UnexpectedSplits, extra)
		}
	}

	for _, split := range validation.ExpectedSplits {
		if available[split] {
			validation.AvailableSplits = append(validation.AvailableSplits, split)
		} else {
			validation.MissingSplits = append(validation.MissingSplits, split)
		}
	}
	sort.Strings(validation.UnexpectedSplits)

	switch {
	case len(validation.AvailableSplits) == 0:
		validation.Status = StatusNoArtifacts
	case len(validation.MissingSplits) > 0:
		validation.Status = StatusSplitMismatch
	case len(validation.UnexpectedSplits) > 0:
		validation.Status = StatusUnexpectedSplits
	case variant.BuildType == entities.BuildTypeRelease && variant.Signing.Config != "" && !variant.Signing.Applied:
		validation.Status = StatusUnsigned
	default:
		validation.Status = StatusReady
	}

	return validation
}
