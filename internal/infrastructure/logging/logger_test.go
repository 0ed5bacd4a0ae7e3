package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"debug": zapcore.DebugLevel,
		"warn":  zapcore.WarnLevel,
		"ERROR": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		l, err := New(in)
		if err != nil {
			t.Fatalf("New(%q): %v", in, err)
		}
		if !l.Core().Enabled(want) || (want > zapcore.DebugLevel && l.Core().Enabled(want-1)) {
			t.Errorf("New(%q): level not %s", in, want)
		}
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
