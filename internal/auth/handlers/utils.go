package handlers

import (
	"net/http"
	"net/url"
	"strings"
)

// resolveRedirectURI keeps a requested post-login destination only when it
// points at the configured frontend
func resolveRedirectURI(requested, frontendURL string) string {
	if requested == "" {
		return frontendURL
	}
	want, err := url.Parse(frontendURL)
	if err != nil {
		return frontendURL
	}
	got, err := url.Parse(requested)
	if err != nil || got.Scheme != want.Scheme || got.Host != want.Host {
		return frontendURL
	}
	return strings.TrimRight(requested, "/")
}

// redirectWithError redirects to frontend with error parameters
func redirectWithError(w http.ResponseWriter, r *http.Request, redirectURI, errorType string) {
	q := url.Values{}
	q.Set("error", errorType)
	http.Redirect(w, r, redirectURI+"/auth/error?"+q.Encode(), http.StatusTemporaryRedirect)
}
