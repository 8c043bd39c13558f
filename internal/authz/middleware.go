package authz

import (
	"net/http"
	"strings"

	"notarium/internal/authn"
	dErrors "notarium/pkg/domain-errors"
	"notarium/pkg/platform/httputil"
	"notarium/pkg/requestcontext"
	"notarium/pkg/secrets"
)

// operatorActor attributes actions performed with the static operator token.
const operatorActor = "operator"

// TokenValidator validates bearer session tokens.
type TokenValidator interface {
	Validate(token string) (*authn.SessionClaims, error)
}

// Gate authenticates admin requests. Two credentials are accepted: the
// operator token (X-Admin-Token, bcrypt-checked) and a bearer session token
// whose email passes the policy.
type Gate struct {
	policy         *Policy
	tokens         TokenValidator
	operatorHash   string
	operatorActive bool
}

func NewGate(policy *Policy, tokens TokenValidator, operatorTokenHash string) *Gate {
	return &Gate{
		policy:         policy,
		tokens:         tokens,
		operatorHash:   operatorTokenHash,
		operatorActive: operatorTokenHash != "",
	}
}

// RequireAdmin wraps admin routes. On success the actor email is stored in
// the request context for audit attribution.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := r.Header.Get("X-Admin-Token"); token != "" && g.operatorActive {
			if err := secrets.Verify(token, g.operatorHash); err != nil {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid admin token"))
				return
			}
			ctx := requestcontext.WithActorEmail(r.Context(), operatorActor)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		email, err := g.bearerEmail(r)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		if err := g.policy.Authorize(r.Context(), email); err != nil {
			httputil.WriteError(w, err)
			return
		}
		ctx := requestcontext.WithActorEmail(r.Context(), email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g *Gate) bearerEmail(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "missing credentials")
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", dErrors.New(dErrors.CodeUnauthorized, "malformed authorization header")
	}
	if g.tokens == nil {
		return "", dErrors.New(dErrors.CodeUnauthorized, "bearer tokens not accepted")
	}
	claims, err := g.tokens.Validate(token)
	if err != nil {
		return "", err
	}
	return claims.Email, nil
}
