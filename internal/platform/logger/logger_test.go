package logger

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeRedactsAndHashes(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap(zap.New(core))

	log.Info("call", "authorization", "Bearer abc", "userSeq", 42, "path", "/detail/7/42")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["authorization"] != "[REDACTED]" {
		t.Fatalf("authorization not redacted: %v", fields["authorization"])
	}
	hashed, _ := fields["userSeq"].(string)
	if !strings.HasPrefix(hashed, "hash:") {
		t.Fatalf("userSeq not hashed: %v", fields["userSeq"])
	}
	if fields["path"] != "/detail/7/42" {
		t.Fatalf("path altered: %v", fields["path"])
	}
}

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"userSeq":   "user_seq",
		"user_seq":  "user_seq",
		" MovieSeq": "movie_seq",
	}
	for in, want := range cases {
		if got := normalizeKey(in); got != want {
			t.Fatalf("normalizeKey(%q)=%q want %q", in, got, want)
		}
	}
}

func TestNopDoesNotPanic(t *testing.T) {
	log := NewNop()
	log.With("stage", "catalog").Error("boom", "error", "x")
	log.Sync()
}
