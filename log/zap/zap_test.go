package zap

import (
	"errors"
	"testing"

	"github.com/unkn0wn-root/dictcache"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := ZapLogger{L: zap.New(core)}

	l.Warn("gen snapshot error", dictcache.Fields{"hashKey": "Redis:Hash", "err": errors.New("down")})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("entries=%d want 1", len(entries))
	}
	e := entries[0]
	if e.Level != zapcore.WarnLevel || e.Message != "gen snapshot error" {
		t.Fatalf("entry=%+v", e)
	}
	ctx := e.ContextMap()
	if ctx["hashKey"] != "Redis:Hash" || ctx["err"] != "down" {
		t.Fatalf("context=%v", ctx)
	}
}
