package models

import (
	"errors"
	"strings"
	"testing"
)

func TestSubmitContentRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     SubmitContentRequest
		wantErr error
	}{
		{
			name: "valid",
			req:  SubmitContentRequest{Title: "Meeting Notes", Body: "Discuss AI roadmap"},
		},
		{
			name:    "missing title",
			req:     SubmitContentRequest{Body: "body"},
			wantErr: ErrMissingTitle,
		},
		{
			name:    "missing body",
			req:     SubmitContentRequest{Title: "title"},
			wantErr: ErrMissingBody,
		},
		{
			name: "title too long",
			req:  SubmitContentRequest{Title: strings.Repeat("x", 501), Body: "body"},
		},
		{
			name: "valid with tags",
			req:  SubmitContentRequest{Title: "t", Body: "b", Tags: []string{"work", "ai"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Validate() = %v, want %v", err, tc.wantErr)
				}
				return
			}

			if tc.name == "title too long" {
				if err == nil {
					t.Fatal("expected length error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestSubmitURLRequest_Validate(t *testing.T) {
	req := SubmitURLRequest{}
	if err := req.Validate(); !errors.Is(err, ErrMissingURL) {
		t.Errorf("Validate() = %v, want ErrMissingURL", err)
	}

	req.URL = "https://example.com/article"
	if err := req.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	req.URL = "https://example.com/" + strings.Repeat("a", 2048)
	if err := req.Validate(); err == nil {
		t.Error("expected length error, got nil")
	}
}

func TestContentKind_Valid(t *testing.T) {
	for _, k := range []ContentKind{KindText, KindURL, KindFile, KindVoice} {
		if !k.Valid() {
			t.Errorf("kind %q should be valid", k)
		}
	}

	if ContentKind("video").Valid() {
		t.Error("kind \"video\" should be invalid")
	}
}
