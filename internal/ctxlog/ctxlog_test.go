package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) != slog.Default() {
		t.Error("FromContext without a logger did not return slog.Default()")
	}

	var buf bytes.Buffer
	logger := New("debug", "text", &buf)
	ctx := WithLogger(context.Background(), logger)
	if FromContext(ctx) != logger {
		t.Error("FromContext did not return the stored logger")
	}
}

func TestNew(t *testing.T) {
	cases := []struct {
		level, format string
		want          string
		logged        bool
	}{
		{level: "debug", format: "text", want: "msg=hello", logged: true},
		{level: "info", format: "json", want: `"msg":"hello"`, logged: false},
		{level: "bogus", format: "text", want: "msg=hello", logged: false},
	}

	for _, c := range cases {
		var buf bytes.Buffer
		New(c.level, c.format, &buf).Debug("hello")
		if c.logged != strings.Contains(buf.String(), c.want) || c.logged != (buf.Len() > 0) {
			t.Errorf("New(%s, %s) logged %q", c.level, c.format, buf.String())
		}
	}

	var buf bytes.Buffer
	New("info", "json", &buf).Info("hello")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("json logger wrote %q", buf.String())
	}
}
