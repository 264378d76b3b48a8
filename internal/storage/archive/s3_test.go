// internal/storage/archive/s3_test.go
package archive

import (
	"errors"
	"testing"
)

func TestS3Storage_ImplementsStorage(t *testing.T) {
	var _ Storage = (*S3Storage)(nil)
}

func TestS3Storage_Key(t *testing.T) {
	tests := []struct {
		name   string
		config S3Config
		path   string
		want   string
	}{
		{
			name:   "no prefix",
			config: S3Config{Bucket: "magnus-archive"},
			path:   "tax/2025/report_single.json",
			want:   "tax/2025/report_single.json",
		},
		{
			name:   "prefix",
			config: S3Config{Bucket: "shared", Prefix: "magnus"},
			path:   "tax/2025/report_single.json",
			want:   "magnus/tax/2025/report_single.json",
		},
		{
			name:   "trailing slash trimmed",
			config: S3Config{Bucket: "shared", Prefix: "magnus/"},
			path:   "tax/2024/report_married_joint.json",
			want:   "magnus/tax/2024/report_married_joint.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewS3(tt.config)
			if err != nil {
				t.Fatalf("NewS3: %v", err)
			}
			if got := s.key(tt.path); got != tt.want {
				t.Errorf("key(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(errors.New("operation error S3: HeadObject, https response error StatusCode: 404")) {
		t.Error("expected HeadObject 404 to classify as not found")
	}
	if !isNotFound(errors.New("NoSuchKey: The specified key does not exist")) {
		t.Error("expected NoSuchKey to classify as not found")
	}
	if isNotFound(errors.New("AccessDenied: insufficient permissions")) {
		t.Error("AccessDenied must not classify as not found")
	}
}
