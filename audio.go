package main

import "strings"

// BuildAudioURL resolves a record's audio reference against the backend base:
// absolute URLs pass through, backend-relative paths get the base prefixed,
// and bare filenames live under the static audio route.
func BuildAudioURL(base, raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if strings.HasPrefix(raw, "/") {
		return base + raw
	}
	return base + "/static/audio/" + raw
}
