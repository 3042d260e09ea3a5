package router

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jbeshir/job-recommender/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func TestOperatorTokenValidator(t *testing.T) {
	validate, err := NewOperatorTokenValidator([]string{"", hashToken("jr_secret")})
	require.NoError(t, err)

	cases := []struct {
		name        string
		header      string
		wantSubject string
		wantErr     bool
	}{
		{name: "valid_token", header: "Bearer jr_secret", wantSubject: operatorSubject},
		{name: "wrong_token", header: "Bearer jr_other", wantErr: true},
		{name: "other_scheme", header: "Bearer auth0|abc"},
		{name: "no_header"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			result, err := validate(req)
			if tc.wantErr {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			if tc.wantSubject == "" {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.Equal(t, tc.wantSubject, result.Subject)
			assert.Equal(t, domain.AuthMethodOperatorToken, result.Method)
		})
	}
}

func TestOperatorTokenValidator_InvalidHash(t *testing.T) {
	_, err := NewOperatorTokenValidator([]string{"not-hex"})
	assert.Error(t, err)

	_, err = NewOperatorTokenValidator([]string{"abcd"})
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	accept := func(r *http.Request) (*AuthResult, error) {
		if r.Header.Get("Authorization") != "Bearer good" {
			return nil, nil
		}
		return &AuthResult{Subject: "alice", Method: domain.AuthMethodAuth0}, nil
	}
	reject := func(r *http.Request) (*AuthResult, error) {
		if r.Header.Get("Authorization") != "Bearer bad" {
			return nil, nil
		}
		return nil, errors.New("invalid token")
	}

	var gotSubject string
	var gotMethod domain.AuthMethod
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject = domain.SubjectFromContext(r.Context())
		gotMethod = domain.AuthMethodFromContext(r.Context())
	})
	handler := NewAuthMiddleware([]AuthValidator{reject, accept})(next)

	cases := []struct {
		name        string
		header      string
		wantStatus  int
		wantSubject string
	}{
		{name: "authenticated", header: "Bearer good", wantStatus: http.StatusOK, wantSubject: "alice"},
		{name: "rejected", header: "Bearer bad", wantStatus: http.StatusUnauthorized},
		{name: "anonymous", wantStatus: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gotSubject, gotMethod = "", ""
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantSubject, gotSubject)
			if tc.wantSubject != "" {
				assert.Equal(t, domain.AuthMethodAuth0, gotMethod)
			}
			if tc.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"message":"invalid token"}`, rec.Body.String())
			}
		})
	}
}

func TestRequireAuthMiddleware(t *testing.T) {
	handler := requireAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(domain.ContextWithSubject(req.Context(), "operator"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
