package handlers

import "net/http"

// isHTMX reports whether the request asks for a page fragment rather than a
// full document.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" || r.Header.Get("HX-Boosted") == "true"
}
