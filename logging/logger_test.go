package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestFormatter(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer SetOutput(os.Stderr)
	SetLogLevel("debug")
	defer SetLogLevel("info")

	Warnf("unknown zone '%v'", "Mars/Base")
	Debugf("whispering")

	out := buf.String()
	t.Log(out)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "WARN ") || !strings.Contains(lines[0], "logging.TestFormatter") {
		t.Fatalf("unexpected line: %v", lines[0])
	}
	if !strings.HasSuffix(lines[0], ": unknown zone 'Mars/Base'") {
		t.Fatalf("unexpected line: %v", lines[0])
	}
	if !strings.Contains(lines[1], "DEBUG") {
		t.Fatalf("unexpected line: %v", lines[1])
	}
}

func TestFormatterFields(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	defer SetOutput(os.Stderr)

	logrus.WithField("input", "2010-13-01").Info("rejected")
	if !strings.Contains(buf.String(), "rejected input=2010-13-01") {
		t.Fatalf("unexpected output: %v", buf.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"info":   logrus.InfoLevel,
		" WARN ": logrus.WarnLevel,
		"Debug":  logrus.DebugLevel,
		"error":  logrus.ErrorLevel,
		"trace":  logrus.TraceLevel,
	}
	for in, want := range cases {
		got, ok := ParseLogLevel(in)
		if !ok || got != want {
			t.Fatalf("ParseLogLevel(%q) = %v, %v", in, got, ok)
		}
	}
	if _, ok := ParseLogLevel("verbose"); ok {
		t.Fatal("verbose should not be a valid level")
	}
	if SetLogLevel("verbose") {
		t.Fatal("SetLogLevel should reject verbose")
	}
}

func TestRollingLogFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "isodate.log")
	c := SetRollingLogFile(RollingLogFileParam{Filename: f, MaxSize: 1, MaxAge: 1, MaxBackups: 1})
	Infof("written to file")
	SetOutput(os.Stderr)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(f)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "written to file") {
		t.Fatalf("unexpected file content: %s", b)
	}
}
