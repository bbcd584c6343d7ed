package s3

import (
	"context"
	"errors"
	"io/ioutil"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// fakeS3 implements only the calls made by basicClient.
type fakeS3 struct {
	s3iface.S3API
	pages      []*s3.ListObjectsV2Output
	listPrefix string
	getErr     error
	getBody    string
	headErr    error
}

func (f *fakeS3) ListObjectsV2PagesWithContext(ctx aws.Context, in *s3.ListObjectsV2Input, fn func(*s3.ListObjectsV2Output, bool) bool, opts ...request.Option) error {
	f.listPrefix = aws.StringValue(in.Prefix)
	for i, p := range f.pages {
		if !fn(p, i == len(f.pages)-1) {
			break
		}
	}
	return nil
}

func (f *fakeS3) GetObjectWithContext(ctx aws.Context, in *s3.GetObjectInput, opts ...request.Option) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &s3.GetObjectOutput{Body: ioutil.NopCloser(strings.NewReader(f.getBody))}, nil
}

func (f *fakeS3) HeadBucketWithContext(ctx aws.Context, in *s3.HeadBucketInput, opts ...request.Option) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.headErr
}

func TestListPages(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 39, 0, 0, time.UTC)
	api := &fakeS3{pages: []*s3.ListObjectsV2Output{
		{Contents: []*s3.Object{{Key: aws.String("exports/a.json"), Size: aws.Int64(10), LastModified: aws.Time(now)}}},
		{Contents: []*s3.Object{{Key: aws.String("exports/b.json"), Size: aws.Int64(20), LastModified: aws.Time(now)}}},
	}}
	c := NewClientWithAPI("bucket", "exports/", api)
	objects, err := c.List(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if api.listPrefix != "exports/" {
		t.Fatalf("expected prefix %q; got %q", "exports/", api.listPrefix)
	}
	if len(objects) != 2 || objects[1].Key != "exports/b.json" || objects[1].Size != 20 {
		t.Fatalf("unexpected objects %+v", objects)
	}
}

func TestGetKeyNotFound(t *testing.T) {
	api := &fakeS3{getErr: awserr.New(s3.ErrCodeNoSuchKey, "missing", nil)}
	c := NewClientWithAPI("bucket", "", api)
	if _, err := c.Get(context.Background(), "x"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound; got %v", err)
	}
}

func TestGet(t *testing.T) {
	c := NewClientWithAPI("bucket", "", &fakeS3{getBody: "data"})
	b, err := c.Get(context.Background(), "x")
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "data" {
		t.Fatalf("expected %q; got %q", "data", string(b))
	}
}

func TestBucketExists(t *testing.T) {
	cases := []struct {
		err      error
		expected bool
		wantErr  bool
	}{
		{nil, true, false},
		{awserr.NewRequestFailure(awserr.New("NotFound", "not found", nil), http.StatusNotFound, "req"), false, false},
		{awserr.NewRequestFailure(awserr.New("Forbidden", "denied", nil), http.StatusForbidden, "req"), false, true},
	}
	for _, tc := range cases {
		ok, err := NewClientWithAPI("bucket", "", &fakeS3{headErr: tc.err}).BucketExists(context.Background())
		if (err != nil) != tc.wantErr {
			t.Fatalf("unexpected error state: %v", err)
		}
		if ok != tc.expected {
			t.Fatalf("expected %v; got %v", tc.expected, ok)
		}
	}
}

func TestGetKeyWithPrefix(t *testing.T) {
	c := &basicClient{prefix: "a/b/"}
	if got := c.getKeyWithPrefix("c"); got != "a/b/c" {
		t.Fatalf("expected %q; got %q", "a/b/c", got)
	}
	c.prefix = ""
	if got := c.getKeyWithPrefix("c"); got != "c" {
		t.Fatalf("expected %q; got %q", "c", got)
	}
}
