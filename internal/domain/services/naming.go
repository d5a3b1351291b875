package services

import (
	"fmt"
	"strings"
)

// ArtifactExtension is the file extension of packaged artifacts
const ArtifactExtension = ".apk"

// ArtifactName formats the output file name of a build invocation.
// Inputs are used verbatim; dirTag is opaque and may come from an external build driver.
func ArtifactName(projectName, versionName, dirTag string) string {
	return fmt.Sprintf("%s_%s-%s%s", projectName, versionName, dirTag, ArtifactExtension)
}

// DirTag joins the non-empty variant parts with '-', e.g. "emulator-debug-armeabi-v7a"
func DirTag(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "-")
}
