package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/muhammadolammi/hrworkflow/internal/config"
)

type fakeBucket struct {
	objects map[string]string
	gotKey  string
	gotIn   string
}

func (f *fakeBucket) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gotIn = *in.Bucket
	f.gotKey = *in.Key
	body, ok := f.objects[*in.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestDownload(t *testing.T) {
	fake := &fakeBucket{objects: map[string]string{"resumes/jane.pdf": "%PDF-1.4 ..."}}
	r := &R2{client: fake, bucket: "hr-resumes"}

	got, err := r.Download(context.Background(), "resumes/jane.pdf")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if string(got) != "%PDF-1.4 ..." {
		t.Errorf("Download() = %q", got)
	}
	if fake.gotIn != "hr-resumes" || fake.gotKey != "resumes/jane.pdf" {
		t.Errorf("requested %s/%s", fake.gotIn, fake.gotKey)
	}

	if _, err := r.Download(context.Background(), "missing"); err == nil {
		t.Error("Download() of missing key succeeded")
	}
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"r2://resumes/jane.pdf", "resumes/jane.pdf", true},
		{"r2://", "", false},
		{"./resumes/jane.pdf", "", false},
	}
	for _, tt := range tests {
		got, ok := ObjectKey(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ObjectKey(%q) = %q, %v", tt.in, got, ok)
		}
	}
}

func TestNewR2RequiresConfig(t *testing.T) {
	if _, err := NewR2(context.Background(), config.R2Config{Bucket: "b"}); err == nil {
		t.Fatal("NewR2() with partial config succeeded")
	}
}
