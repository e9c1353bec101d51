package main

import "testing"

func TestBuildAudioURL(t *testing.T) {
	const base = "http://localhost:8000"
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"absent", "", ""},
		{"absolute http", "http://x/y.wav", "http://x/y.wav"},
		{"absolute https", "https://x/y.wav", "https://x/y.wav"},
		{"backend relative", "/a/b.wav", base + "/a/b.wav"},
		{"bare filename", "clip1.wav", base + "/static/audio/clip1.wav"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildAudioURL(base, tc.raw); got != tc.want {
				t.Fatalf("BuildAudioURL(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}
