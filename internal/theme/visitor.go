package theme

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/oklog/ulid/v2"
)

// VisitorCookie names the signed cookie carrying the visitor id.
const VisitorCookie = "shelf_visitor"

type visitorKey struct{}

// WithVisitor returns a copy of ctx carrying the visitor id.
func WithVisitor(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, visitorKey{}, id)
}

// VisitorFrom returns the visitor id stored in ctx, if any.
func VisitorFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(visitorKey{}).(string)
	return id, ok && id != ""
}

// Visitors issues and verifies anonymous visitor ids. Ids are ULIDs signed
// with an HMAC so a client cannot claim another visitor's preferences.
type Visitors struct {
	codec  *securecookie.SecureCookie
	secure bool
	maxAge time.Duration
}

// NewVisitors creates a visitor codec. An empty hashKey generates a random one,
// which invalidates every cookie on restart.
func NewVisitors(hashKey []byte, secure bool, maxAge time.Duration) (*Visitors, error) {
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
		if hashKey == nil {
			return nil, fmt.Errorf("failed to generate cookie hash key")
		}
	}
	codec := securecookie.New(hashKey, nil)
	codec.MaxAge(int(maxAge.Seconds()))
	codec.SetSerializer(securecookie.NopEncoder{})

	return &Visitors{codec: codec, secure: secure, maxAge: maxAge}, nil
}

// Read returns the verified visitor id of r.
func (v *Visitors) Read(r *http.Request) (string, bool) {
	c, err := r.Cookie(VisitorCookie)
	if err != nil {
		return "", false
	}

	var raw []byte
	if err := v.codec.Decode(VisitorCookie, c.Value, &raw); err != nil {
		return "", false
	}
	id, err := ulid.ParseStrict(string(raw))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// Issue mints a new visitor id and sets its cookie on w.
func (v *Visitors) Issue(w http.ResponseWriter) (string, error) {
	id := ulid.Make().String()

	value, err := v.codec.Encode(VisitorCookie, []byte(id))
	if err != nil {
		return "", fmt.Errorf("failed to encode visitor cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     VisitorCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(v.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   v.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}
