package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"

	"github.com/NarenDawar/ai-governance-hub/internal/application/auth"
)

// InitOAuthProviders registers Goth providers and the session store. Call
// once at startup.
func InitOAuthProviders(googleClientID, googleClientSecret, callbackURL, sessionSecret string) {
	if googleClientID != "" && googleClientSecret != "" {
		goth.UseProviders(google.New(googleClientID, googleClientSecret, callbackURL))
	}
	if sessionSecret != "" {
		gothic.Store = sessions.NewCookieStore([]byte(sessionSecret))
	}
}

// OAuthBegin redirects to the OAuth provider. Provider from URL:
// /auth/{provider}.
func OAuthBegin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		if provider == "" {
			writeErr(w, http.StatusBadRequest, "", "provider required")
			return
		}
		if _, err := goth.GetProvider(provider); err != nil {
			writeErr(w, http.StatusBadRequest, "", "unknown provider")
			return
		}
		// gothic expects the provider in the query string
		r2 := r.Clone(r.Context())
		q := r2.URL.Query()
		q.Set("provider", provider)
		r2.URL.RawQuery = q.Encode()
		authURL, err := gothic.GetAuthURL(w, r2)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "", "internal error")
			return
		}
		http.Redirect(w, r, authURL, http.StatusTemporaryRedirect)
	}
}

// OAuthCallback completes provider auth, gets or creates the user, issues
// tokens and redirects to the frontend.
func OAuthCallback(oauthCallback *auth.OAuthCallback, redirectURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider := chi.URLParam(r, "provider")
		if provider == "" {
			writeErr(w, http.StatusBadRequest, "", "provider required")
			return
		}
		r2 := r.Clone(r.Context())
		q := r2.URL.Query()
		q.Set("provider", provider)
		r2.URL.RawQuery = q.Encode()
		gothUser, err := gothic.CompleteUserAuth(w, r2)
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "", "oauth failed")
			return
		}
		result, err := oauthCallback.Execute(r.Context(), auth.OAuthUser{
			Provider:       gothUser.Provider,
			ProviderUserID: gothUser.UserID,
			Email:          gothUser.Email,
			Name:           gothUser.Name,
		})
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "", "internal error")
			return
		}
		// The client moves these out of the URL immediately after landing.
		u, _ := url.Parse(redirectURL)
		uq := u.Query()
		uq.Set("access_token", result.AccessToken)
		uq.Set("refresh_token", result.RefreshToken)
		uq.Set("expires_in", strconv.FormatInt(result.ExpiresIn, 10))
		u.RawQuery = uq.Encode()
		http.Redirect(w, r, u.String(), http.StatusTemporaryRedirect)
	}
}
