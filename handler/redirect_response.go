package handler

import (
	"net/http"
	"net/url"

	"github.com/starfederation/datastar-go/datastar"
)

type redirectResponse struct {
	url  string
	code int
}

func (r redirectResponse) Render(w http.ResponseWriter, req *http.Request) error {
	if IsDataStar(req) {
		return datastar.NewSSE(w, req).Redirect(r.url)
	}
	http.Redirect(w, req, r.url, r.code)
	return nil
}

// Redirect answers 303 See Other, or a client-side redirect for DataStar
// requests.
func Redirect(url string) Response {
	return redirectResponse{url: url, code: http.StatusSeeOther}
}

// SafeRedirect redirects to target when it stays on the request's host and
// to fallback otherwise.
func SafeRedirect(r *http.Request, target, fallback string) Response {
	if target == "" || !sameHost(target, r) {
		target = fallback
	}
	return Redirect(target)
}

func sameHost(raw string, r *http.Request) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	// Scheme-relative //host URLs carry a host too.
	return u.Scheme == "" && (u.Host == "" || u.Host == r.Host)
}
