// Package services contains server-side business logic: identity
// resolution, the transactional write coordinator and the user/item
// operations built on top of them.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
	"github.com/dmitrijs2005/itemkeeper/internal/server/repositories/repomanager"
)

// Identity is the caller established by IdentityResolver for one request.
// Only the resolver can produce a non-zero value.
type Identity struct {
	user models.User
}

func (i Identity) UserID() int64 { return i.user.ID }

func (i Identity) Login() string { return i.user.Login }

// IsZero reports whether the identity was never resolved.
func (i Identity) IsZero() bool { return i.user.ID == 0 && i.user.Login == "" }

// IdentityResolver maps the Authorization header to a User. The credential
// is the user's login.
type IdentityResolver struct {
	repomanager repomanager.RepositoryManager
}

func NewIdentityResolver(m repomanager.RepositoryManager) *IdentityResolver {
	return &IdentityResolver{repomanager: m}
}

const bearerScheme = "bearer"

// ParseCredential extracts the login from an Authorization header value.
// An optional "Bearer" scheme is stripped; the scheme word on its own is not
// a credential.
func ParseCredential(header string) (string, bool) {
	cred := strings.TrimSpace(header)
	fields := strings.Fields(cred)
	if len(fields) == 0 {
		return "", false
	}
	if strings.EqualFold(fields[0], bearerScheme) {
		cred = strings.TrimSpace(cred[len(fields[0]):])
	}
	if cred == "" {
		return "", false
	}
	return cred, true
}

// Resolve returns the Identity for header. Missing, unknown and ambiguous
// credentials all yield common.ErrorUnauthorized; other store failures are
// returned wrapped.
func (r *IdentityResolver) Resolve(ctx context.Context, db dbx.DBTX, header string) (Identity, error) {
	login, ok := ParseCredential(header)
	if !ok {
		return Identity{}, common.ErrorUnauthorized
	}

	user, err := r.repomanager.Users(db).GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorAmbiguous) {
			return Identity{}, common.ErrorUnauthorized
		}
		return Identity{}, fmt.Errorf("error resolving identity: %w", err)
	}
	return Identity{user: *user}, nil
}

func requireIdentity(id Identity) error {
	if id.IsZero() {
		return common.ErrorUnauthorized
	}
	return nil
}
