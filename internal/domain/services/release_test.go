package services

import (
	"testing"

	"github.com/ochairo/variants/internal/domain/entities"
)

func releaseVariant(signing entities.SigningStatus) entities.BuildVariant {
	variant := entities.BuildVariant{
		Flavor:    "emulator",
		BuildType: entities.BuildTypeRelease,
		Identity:  entities.VariantIdentity{VersionName: "0.87.1"},
		Signing:   signing,
	}
	for _, split := range []string{"x86", "arm64-v8a", "universal"} {
		tag := DirTag("emulator", "release", split)
		variant.Outputs = append(variant.Outputs, entities.ArtifactOutput{
			Split:    split,
			DirTag:   tag,
			FileName: ArtifactName("J2ME-Loader", "0.87.1", tag),
		})
	}
	return variant
}

func TestValidateRelease(t *testing.T) {
	signed := entities.SigningStatus{Config: "emulator", Applied: true}

	tests := []struct {
		name               string
		signing            entities.SigningStatus
		artifactPaths      []string
		expectedStatus     ReleaseStatus
		expectedReady      bool
		expectedMissing    int
		expectedUnexpected int
	}{
		{
			name:    "all splits present - ready",
			signing: signed,
			artifactPaths: []string{
				"dist/J2ME-Loader_0.87.1-emulator-release-x86.apk",
				"dist/J2ME-Loader_0.87.1-emulator-release-arm64-v8a.apk",
				"dist/J2ME-Loader_0.87.1-emulator-release-universal.apk",
			},
			expectedStatus: StatusReady,
			expectedReady:  true,
		},
		{
			name:            "no artifacts - error",
			signing:         signed,
			artifactPaths:   []string{},
			expectedStatus:  StatusNoArtifacts,
			expectedMissing: 3,
		},
		{
			name:    "missing split - error",
			signing: signed,
			artifactPaths: []string{
				"J2ME-Loader_0.87.1-emulator-release-x86.apk",
				"J2ME-Loader_0.87.1-emulator-release-universal.apk",
			},
			expectedStatus:  StatusSplitMismatch,
			expectedMissing: 1,
		},
		{
			name:    "extra split - error",
			signing: signed,
			artifactPaths: []string{
				"J2ME-Loader_0.87.1-emulator-release-x86.apk",
				"J2ME-Loader_0.87.1-emulator-release-arm64-v8a.apk",
				"J2ME-Loader_0.87.1-emulator-release-universal.apk",
				"J2ME-Loader_0.87.1-emulator-release-mips.apk",
			},
			expectedStatus:     StatusUnexpectedSplits,
			expectedUnexpected: 1,
		},
		{
			name:    "checksums, signatures and other variants ignored",
			signing: signed,
			artifactPaths: []string{
				"J2ME-Loader_0.87.1-emulator-release-x86.apk",
				"J2ME-Loader_0.87.1-emulator-release-x86.apk.sha256",
				"J2ME-Loader_0.87.1-emulator-release-x86.apk.asc",
				"J2ME-Loader_0.87.1-emulator-release-arm64-v8a.apk",
				"J2ME-Loader_0.87.1-emulator-release-universal.apk",
				"J2ME-Loader_0.87.1-emulator-debug-x86.apk",
				"J2ME-Loader_0.86.0-emulator-release-x86.apk",
			},
			expectedStatus: StatusReady,
			expectedReady:  true,
		},
		{
			name:    "complete but unsigned - error",
			signing: entities.SigningStatus{Config: "emulator", Applied: false, Reason: "credentials file not found"},
			artifactPaths: []string{
				"J2ME-Loader_0.87.1-emulator-release-x86.apk",
				"J2ME-Loader_0.87.1-emulator-release-arm64-v8a.apk",
				"J2ME-Loader_0.87.1-emulator-release-universal.apk",
			},
			expectedStatus: StatusUnsigned,
		},
	}

	service := NewReleaseService()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validation := service.ValidateRelease("J2ME-Loader", releaseVariant(tt.signing), tt.artifactPaths)

			if validation.Status != tt.expectedStatus {
				t.Errorf("Status = %v, want %v", validation.Status, tt.expectedStatus)
			}

			if validation.IsReady() != tt.expectedReady {
				t.Errorf("IsReady() = %v, want %v", validation.IsReady(), tt.expectedReady)
			}

			if len(validation.MissingSplits) != tt.expectedMissing {
				t.Errorf("Missing splits = %v, want %d", validation.MissingSplits, tt.expectedMissing)
			}

			if len(validation.UnexpectedSplits) != tt.expectedUnexpected {
				t.Errorf("Unexpected splits = %v, want %d", validation.UnexpectedSplits, tt.expectedUnexpected)
			}

			if tt.expectedStatus != StatusReady && validation.ErrorMessage() == "" {
				t.Error("Expected error message but got empty string")
			}
		})
	}
}
