package llm

import (
	"testing"
	"time"
)

func TestCallOptions_Merged(t *testing.T) {
	t.Parallel()

	defaults := DefaultCallOptions()

	tests := []struct {
		name string
		opts CallOptions
		want CallOptions
	}{
		{
			name: "zero value inherits everything",
			opts: CallOptions{},
			want: defaults,
		},
		{
			name: "explicit fields win",
			opts: CallOptions{Temperature: 0.2, MaxTokens: 500, Timeout: time.Second},
			want: CallOptions{Temperature: 0.2, MaxTokens: 500, Timeout: time.Second},
		},
		{
			name: "partial overlay",
			opts: CallOptions{Timeout: 20 * time.Second},
			want: CallOptions{Temperature: DefaultTemperature, MaxTokens: DefaultMaxTokens, Timeout: 20 * time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.opts.merged(defaults); got != tt.want {
				t.Errorf("merged() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCallOptions_Validate(t *testing.T) {
	t.Parallel()

	if err := DefaultCallOptions().validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
	if err := (CallOptions{MaxTokens: -1, Timeout: time.Second}).validate(); err == nil {
		t.Error("negative token budget should fail validation")
	}
	if err := (CallOptions{MaxTokens: 100, Timeout: -time.Second}).validate(); err == nil {
		t.Error("negative timeout should fail validation")
	}
}
