package gateway

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"missing api key", errors.New("API key not valid"), KindCredentialMissing},
		{"http 401", errors.New("request failed: 401 unauthorized"), KindCredentialMissing},
		{"safety block", errors.New("candidate blocked for SAFETY reasons"), KindSafetyRejected},
		{"prohibited content", errors.New("PROHIBITED_CONTENT"), KindSafetyRejected},
		{"network failure", errors.New("dial tcp: connection refused"), KindUnspecified},
		{"malformed response", errors.New("unexpected end of JSON input"), KindUnspecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ge := Classify("gemini", tt.err)
			if ge.Kind != tt.want {
				t.Errorf("Classify(%v).Kind = %v, want %v", tt.err, ge.Kind, tt.want)
			}
			if ge.Provider != "gemini" {
				t.Errorf("Provider = %q, want gemini", ge.Provider)
			}
			if ge.UserMessage() == "" {
				t.Error("classified error must carry a non-empty user message")
			}
			if !errors.Is(ge, tt.err) {
				t.Error("classified error should unwrap to its cause")
			}
		})
	}
}

func TestClassifyPassThrough(t *testing.T) {
	orig := NewError(KindSafetyRejected, "gemini", errors.New("blocked"))
	wrapped := fmt.Errorf("analysis failed: %w", orig)

	got := Classify("openai", wrapped)
	if got != orig {
		t.Error("already-classified error should pass through unchanged")
	}
}

func TestClassifyNil(t *testing.T) {
	if Classify("gemini", nil) != nil {
		t.Error("Classify(nil) should be nil")
	}
}

func TestKindPredicates(t *testing.T) {
	cred := NewError(KindCredentialMissing, "gemini", nil)
	safety := NewError(KindSafetyRejected, "gemini", nil)

	if !IsCredentialMissing(fmt.Errorf("wrap: %w", cred)) {
		t.Error("IsCredentialMissing should see through wrapping")
	}
	if IsCredentialMissing(safety) {
		t.Error("IsCredentialMissing should reject other kinds")
	}
	if !IsSafetyRejected(safety) {
		t.Error("IsSafetyRejected(safety) = false")
	}
}

func TestErrorIsMatchesOnKind(t *testing.T) {
	a := NewError(KindUnspecified, "gemini", errors.New("a"))
	b := NewError(KindUnspecified, "openai", errors.New("b"))
	if !errors.Is(a, b) {
		t.Error("errors of the same kind should match via errors.Is")
	}
}

func TestUserMessages(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindCredentialMissing, "API Key Required for Neural Processing"},
		{KindSafetyRejected, "Security Violation: Target content breached local safety protocols."},
		{KindUnspecified, "Interrogation failure: The neural engine encountered an unhandled exception."},
	}
	for _, tt := range tests {
		if got := NewError(tt.kind, "", nil).UserMessage(); got != tt.want {
			t.Errorf("UserMessage(%s) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
