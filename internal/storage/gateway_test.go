package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

type fakePresigner struct {
	err     error
	lastKey string
	lastTTL time.Duration
}

func (f *fakePresigner) PresignGetObject(_ context.Context, key string, expiry time.Duration) (string, error) {
	f.lastKey, f.lastTTL = key, expiry
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("https://storage.test/%s?sig=get", key), nil
}

func (f *fakePresigner) PresignPutObject(_ context.Context, key string, expiry time.Duration) (string, error) {
	f.lastKey, f.lastTTL = key, expiry
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("https://storage.test/%s?sig=put", key), nil
}

func TestGrantReadAccess(t *testing.T) {
	p := &fakePresigner{}
	g := NewResourceGateway(p, 0)

	grant, err := g.GrantReadAccess(context.Background(), "i-1/lecture.pdf")
	if err != nil {
		t.Fatalf("GrantReadAccess: %v", err)
	}
	if !strings.Contains(grant.URL, "i-1/lecture.pdf") {
		t.Fatalf("url = %q", grant.URL)
	}
	if p.lastTTL != DefaultReadTTL {
		t.Fatalf("ttl = %v, want default %v", p.lastTTL, DefaultReadTTL)
	}
	if !grant.ExpiresAt.After(time.Now()) {
		t.Fatal("grant already expired")
	}
}

func TestGrantReadAccessEmptyKey(t *testing.T) {
	g := NewResourceGateway(&fakePresigner{}, time.Minute)
	if _, err := g.GrantReadAccess(context.Background(), ""); !errors.Is(err, ErrNoResource) {
		t.Fatalf("err = %v, want ErrNoResource", err)
	}
}

func TestGrantReadAccessPresignFailure(t *testing.T) {
	g := NewResourceGateway(&fakePresigner{err: errors.New("endpoint down")}, time.Minute)
	if _, err := g.GrantReadAccess(context.Background(), "k"); err == nil {
		t.Fatal("expected presign error to propagate")
	}
}

func TestGrantUploadAccessScopesKeyToOwner(t *testing.T) {
	p := &fakePresigner{}
	g := NewResourceGateway(p, time.Minute)

	grant, err := g.GrantUploadAccess(context.Background(), "i-42", "../../etc/passwd")
	if err != nil {
		t.Fatalf("GrantUploadAccess: %v", err)
	}
	if !strings.HasPrefix(grant.Key, "i-42/") {
		t.Fatalf("key = %q, want owner prefix", grant.Key)
	}
	if strings.Contains(grant.Key, "..") {
		t.Fatalf("key = %q, path traversal not stripped", grant.Key)
	}
	if grant.URL == "" {
		t.Fatal("expected an upload URL")
	}
}

func TestGrantUploadAccessStripsWindowsPaths(t *testing.T) {
	g := NewResourceGateway(&fakePresigner{}, time.Minute)
	grant, err := g.GrantUploadAccess(context.Background(), "i-1", `C:\notes\week1.pdf`)
	if err != nil {
		t.Fatalf("GrantUploadAccess: %v", err)
	}
	if !strings.HasSuffix(grant.Key, "_week1.pdf") {
		t.Fatalf("key = %q, want basename only", grant.Key)
	}
}
