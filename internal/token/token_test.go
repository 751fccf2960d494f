package token

import (
	"errors"
	"regexp"
	"testing"
)

var hexToken = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestGenerate(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		secret := Generate()
		if !hexToken.MatchString(secret) {
			t.Fatalf("Generate() = %q, want %d bytes as lowercase hex", secret, TokenBytes)
		}
		if seen[secret] {
			t.Fatalf("duplicate secret %s", secret)
		}
		seen[secret] = true
	}
}

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"trimmed", "  s3cret\n", "s3cret", false},
		{"empty", "", "", false},
		{"whitespace only", " \t", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TAGBRIDGE_TEST_SECRET", tt.value)
			got, err := FromEnv("TAGBRIDGE_TEST_SECRET")
			if tt.wantErr {
				if !errors.Is(err, ErrBlankSecret) {
					t.Errorf("FromEnv() error = %v, want %v", err, ErrBlankSecret)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromEnv() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("FromEnv() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHeader(t *testing.T) {
	if got := Header("abc"); got != "Bearer abc" {
		t.Errorf("Header() = %q, want %q", got, "Bearer abc")
	}
}
