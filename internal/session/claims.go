// Package session owns the bearer-token lifecycle for the back-office
// client: decoding identity claims out of the token, persisting the token
// between runs, and exposing login/register/logout operations over an
// observable state snapshot.
package session

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avolkov/backoffice/internal/mapx"
)

// RoleAdmin is the role claim value that unlocks mutating commands.
const RoleAdmin = "admin"

// Identity is the fixed projection of the token's claims the client
// cares about. A missing field resolves to its zero value, except the
// id: without a usable id there is no identity at all.
type Identity struct {
	ID        int64
	Email     string
	Role      string
	UsersName string
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// Claim-key aliases per identity field, probed first-match-wins. The
// backend issues both short keys and the legacy XML-namespace-qualified
// names, depending on its version.
var (
	idClaimKeys = []string{
		"id",
		"nameid",
		"sub",
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier",
	}
	emailClaimKeys = []string{
		"email",
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress",
	}
	roleClaimKeys = []string{
		"role",
		"http://schemas.microsoft.com/ws/2008/06/identity/claims/role",
	}
	nameClaimKeys = []string{
		"usersName",
		"name",
		"unique_name",
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name",
	}
)

var segmentDecoder = jwt.NewParser()

// DecodeClaims extracts the payload of a compact dot-delimited token
// without verifying its signature. The token needs at least two segments;
// the second is base64url-decoded and parsed as a JSON object. Any
// failure along the way (bad base64, bad UTF-8, bad JSON) yields nil,
// never an error: an unreadable token simply means "not authenticated".
func DecodeClaims(token string) map[string]any {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil
	}
	raw, err := segmentDecoder.DecodeSegment(parts[1])
	if err != nil {
		return nil
	}
	if !utf8.Valid(raw) {
		return nil
	}
	var claims map[string]any
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil
	}
	return claims
}

// ResolveIdentity projects a claims map onto an Identity. Returns nil
// when claims are absent or the id claim does not resolve to a usable
// number; a partially populated identity is never produced in that case.
func ResolveIdentity(claims map[string]any) *Identity {
	if claims == nil {
		return nil
	}
	id, ok := mapx.FirstInt(claims, idClaimKeys...)
	if !ok {
		return nil
	}
	ident := &Identity{ID: id}
	ident.Email, _ = mapx.FirstString(claims, emailClaimKeys...)
	ident.Role, _ = mapx.FirstString(claims, roleClaimKeys...)
	ident.UsersName, _ = mapx.FirstString(claims, nameClaimKeys...)
	return ident
}

// IdentityFromToken is DecodeClaims followed by ResolveIdentity.
func IdentityFromToken(token string) *Identity {
	return ResolveIdentity(DecodeClaims(token))
}
