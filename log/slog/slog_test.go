package slog

import (
	"bytes"
	"encoding/json"
	stdslog "log/slog"
	"strings"
	"testing"

	"github.com/unkn0wn-root/dictcache"
)

func TestLoggerWritesFieldsAndRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := Logger{L: stdslog.New(stdslog.NewJSONHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelInfo}))}

	l.Debug("hidden", dictcache.Fields{"a": 1})
	if buf.Len() != 0 {
		t.Fatalf("debug line written below level: %s", buf.String())
	}

	l.Error("refresh failed", dictcache.Fields{"stage": "load", "hashKey": "Redis:Hash"})
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	if rec["msg"] != "refresh failed" || rec["stage"] != "load" || rec["hashKey"] != "Redis:Hash" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if rec["level"] != "ERROR" {
		t.Fatalf("level=%v", rec["level"])
	}
}

func TestAttrsSorted(t *testing.T) {
	got := attrs(dictcache.Fields{"b": 1, "a": 2, "c": 3})
	var keys []string
	for _, a := range got {
		keys = append(keys, a.Key)
	}
	if strings.Join(keys, ",") != "a,b,c" {
		t.Fatalf("keys=%v", keys)
	}
}
