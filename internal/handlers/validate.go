package handlers

import (
	"mime"
	"net/http"
	"strings"
)

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

// wantsJSON reports whether the caller is a script expecting a JSON answer
// rather than a browser form submit.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") || checkContentType(r, "application/json")
}
