package config

import (
	"strings"
	"testing"
)

func TestMaskSecret(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		secret string
		want   string
	}{
		{"empty", "", ""},
		{"short fully masked", "abc123", maskedValue},
		{"exactly eight fully masked", "12345678", maskedValue},
		{"long keeps edges", "my_long_secret_key_123", "my<" + maskedValue + ">23"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := maskSecret(tt.secret); got != tt.want {
				t.Errorf("maskSecret(%q) = %q, want %q", tt.secret, got, tt.want)
			}
		})
	}
}

func TestString_NeverLeaksSecrets(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.SupabaseAnonKey = "anon_key_value_0123456789"
	cfg.SupabaseServiceKey = "service_key_value_0123456789"

	out := cfg.String()
	if strings.Contains(out, "anon_key_value_0123456789") {
		t.Error("String() leaks the anon key")
	}
	if strings.Contains(out, "service_key_value_0123456789") {
		t.Error("String() leaks the service key")
	}
	if !strings.Contains(out, cfg.SupabaseURL) {
		t.Error("String() should keep non-sensitive fields readable")
	}
}

func TestFullModelName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		model string
		want  string
	}{
		{"bare model gets provider prefix", "gemini-2.5-flash", "googleai/gemini-2.5-flash"},
		{"qualified name untouched", "googleai/gemini-2.5-pro", "googleai/gemini-2.5-pro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := &Config{Provider: ProviderGemini, ModelName: tt.model}
			if got := cfg.FullModelName(); got != tt.want {
				t.Errorf("FullModelName() = %q, want %q", got, tt.want)
			}
		})
	}
}
