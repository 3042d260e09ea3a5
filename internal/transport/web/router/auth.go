package router

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/jbeshir/job-recommender/internal/domain"
	"github.com/jbeshir/job-recommender/internal/metrics"
)

// OperatorTokenPrefix marks bearer tokens issued to operators rather than Auth0 users.
const OperatorTokenPrefix = "jr_"

const operatorSubject = "operator"

// AuthResult represents the result of a successful authentication.
type AuthResult struct {
	Subject string
	Method  domain.AuthMethod
}

// AuthValidator attempts to validate authentication from a request.
// Returns nil, nil if this validator doesn't apply (wrong auth type).
// Returns AuthResult, nil on success.
// Returns nil, error if validation was attempted but failed.
type AuthValidator func(r *http.Request) (*AuthResult, error)

// NewAuthMiddleware creates a middleware that validates requests using multiple authentication methods.
func NewAuthMiddleware(validators []AuthValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, validate := range validators {
				result, err := validate(r)
				if result == nil && err == nil {
					continue // This validator doesn't apply
				}

				if err != nil {
					logger := domain.LoggerFromContext(r.Context())
					logger.WarnContext(r.Context(), "authentication failed", "error", err)
					metrics.RecordAuthAttempt("", metrics.AuthRejected)
					writeUnauthorized(w, err)
					return
				}

				metrics.RecordAuthAttempt(string(result.Method), metrics.AuthAuthenticated)
				ctx := domain.ContextWithSubject(r.Context(), result.Subject)
				ctx = domain.ContextWithAuthMethod(ctx, result.Method)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			// No validator matched; public endpoints serve anonymous requests.
			metrics.RecordAuthAttempt("", metrics.AuthAnonymous)
			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
}

// NewAuth0Validator creates a validator for Auth0 JWT tokens.
func NewAuth0Validator(auth0Domain, auth0Audience string) (AuthValidator, error) {
	issuerURL, err := url.Parse("https://" + auth0Domain + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to parse the issuer url: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)
	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{auth0Audience},
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT validator: %w", err)
	}

	return func(r *http.Request) (*AuthResult, error) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer auth0|") {
			return nil, nil
		}

		token, err := jwtValidator.ValidateToken(r.Context(), authHeader[len("Bearer auth0|"):])
		if err != nil {
			return nil, fmt.Errorf("invalid JWT token")
		}

		claims := token.(*validator.ValidatedClaims)
		return &AuthResult{
			Subject: claims.RegisteredClaims.Subject,
			Method:  domain.AuthMethodAuth0,
		}, nil
	}, nil
}

// NewOperatorTokenValidator creates a validator for operator tokens, configured as the
// hex SHA-256 hashes of the accepted tokens.
func NewOperatorTokenValidator(tokenHashes []string) (AuthValidator, error) {
	hashes := make([][]byte, 0, len(tokenHashes))
	for _, h := range tokenHashes {
		if h == "" {
			continue
		}
		b, err := hex.DecodeString(h)
		if err != nil || len(b) != sha256.Size {
			return nil, fmt.Errorf("invalid operator token hash [%s]", h)
		}
		hashes = append(hashes, b)
	}

	return func(r *http.Request) (*AuthResult, error) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer "+OperatorTokenPrefix) {
			return nil, nil
		}

		hash := sha256.Sum256([]byte(authHeader[len("Bearer "):]))
		for _, want := range hashes {
			if subtle.ConstantTimeCompare(hash[:], want) == 1 {
				return &AuthResult{
					Subject: operatorSubject,
					Method:  domain.AuthMethodOperatorToken,
				}, nil
			}
		}
		return nil, fmt.Errorf("invalid operator token")
	}, nil
}
