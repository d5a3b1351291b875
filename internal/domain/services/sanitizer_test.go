package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/ochairo/variants/internal/domain/entities"
)

func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"spaces become underscores", "My Cool App", "my_cool_app"},
		{"forbidden characters removed", `a/b\c:d*e?f"g<h>i|j`, "abcdefghij"},
		{"mixed", `Space: Invaders <Deluxe>`, "space_invaders_deluxe"},
		{"already clean", "demo_midlet", "demo_midlet"},
		{"digits and dots kept", "Game 2.0", "game_2.0"},
		{"only forbidden", `???`, ""},
		{"hyphen kept", "Tic-Tac", "tic-tac"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeIdentifier(tt.input); got != tt.expected {
				t.Errorf("SanitizeIdentifier(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

// Under a Turkish locale I would lower-case to dotless ı
func TestSanitizeIdentifier_LocaleIndependent(t *testing.T) {
	if got := SanitizeIdentifier("INFO"); got != "info" {
		t.Errorf("SanitizeIdentifier(INFO) = %q, want info", got)
	}
}

func FuzzSanitizeIdentifier(f *testing.F) {
	f.Add("My Cool App")
	f.Add(`<Bad|Name>`)
	f.Add("  leading and trailing  ")
	f.Add("Ünïcödé Nämé")

	f.Fuzz(func(t *testing.T, input string) {
		out := SanitizeIdentifier(input)
		if strings.ContainsAny(out, forbiddenIdentifierChars+" ") {
			t.Fatalf("SanitizeIdentifier(%q) = %q still contains forbidden characters", input, out)
		}
		if again := SanitizeIdentifier(out); again != out {
			t.Fatalf("not idempotent: %q -> %q -> %q", input, out, again)
		}
	})
}

func TestValidateApplicationID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"ru.woesss.j2meloader", false},
		{"com.example.androidlet.my_cool_app", false},
		{"com.example.androidlet.my_cool_app.debug", false},
		{"", true},
		{"com.example.tic-tac", true},
		{"com.example.jeu_démo", true},
		{"com..example", true},
		{"com.example.", true},
		{"Com.Example", true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateApplicationID(tt.id)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateApplicationID(%q) = nil, want error", tt.id)
				}
				if !errors.Is(err, entities.ErrInvalidIdentifier) {
					t.Errorf("error %v does not wrap ErrInvalidIdentifier", err)
				}
				return
			}
			if err != nil {
				t.Errorf("ValidateApplicationID(%q) = %v, want nil", tt.id, err)
			}
		})
	}
}
