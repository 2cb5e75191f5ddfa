package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
)

// ErrNoResource is returned when a grant is requested for an entity that has
// no stored object key.
var ErrNoResource = errors.New("no resource attached")

// DefaultReadTTL bounds how long a read grant stays valid when the config
// does not override it.
const DefaultReadTTL = 60 * time.Second

// ResourceGateway issues short-lived access grants for stored objects. Every
// grant is authorized by the caller before it reaches the gateway; the
// gateway only mints URLs.
type ResourceGateway struct {
	presigner FilePresigner
	readTTL   time.Duration
	uploadTTL time.Duration
	now       func() time.Time
}

// NewResourceGateway returns a gateway issuing grants with the given read
// TTL. Zero or negative readTTL falls back to DefaultReadTTL. Upload grants
// get a longer window since clients push whole files through them.
func NewResourceGateway(presigner FilePresigner, readTTL time.Duration) *ResourceGateway {
	if readTTL <= 0 {
		readTTL = DefaultReadTTL
	}
	return &ResourceGateway{
		presigner: presigner,
		readTTL:   readTTL,
		uploadTTL: 15 * time.Minute,
		now:       time.Now,
	}
}

// ReadGrant is a time-limited URL for downloading one object.
type ReadGrant struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// UploadGrant is a time-limited URL for uploading one object, together with
// the server-chosen key the caller must persist on the owning entity.
type UploadGrant struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// GrantReadAccess mints a read grant for key. An empty key means the owning
// entity has no attached resource.
func (g *ResourceGateway) GrantReadAccess(ctx context.Context, key string) (*ReadGrant, error) {
	if key == "" {
		return nil, ErrNoResource
	}
	url, err := g.presigner.PresignGetObject(ctx, key, g.readTTL)
	if err != nil {
		return nil, err
	}
	return &ReadGrant{URL: url, ExpiresAt: g.now().Add(g.readTTL)}, nil
}

// GrantUploadAccess mints an upload grant for a new object owned by
// ownerID. The object key is chosen server-side so clients cannot place
// objects outside their own prefix.
func (g *ResourceGateway) GrantUploadAccess(ctx context.Context, ownerID, filename string) (*UploadGrant, error) {
	key := objectKey(ownerID, filename, g.now())
	url, err := g.presigner.PresignPutObject(ctx, key, g.uploadTTL)
	if err != nil {
		return nil, err
	}
	return &UploadGrant{Key: key, URL: url, ExpiresAt: g.now().Add(g.uploadTTL)}, nil
}

func objectKey(ownerID, filename string, now time.Time) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	return fmt.Sprintf("%s/%d_%s", ownerID, now.UnixMilli(), name)
}
