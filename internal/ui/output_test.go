package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestDebugfGated(t *testing.T) {
	var buf bytes.Buffer
	u := NewWithWriter(&buf)

	u.Debugf("hidden %s", "message")
	if buf.Len() != 0 {
		t.Errorf("Debugf() wrote %q with debug disabled", buf.String())
	}

	u.SetDebug(true)
	u.Debugf("visible %s", "message")
	if !strings.Contains(buf.String(), "[DEBUG] visible message") {
		t.Errorf("Debugf() output = %q, want it to contain the debug line", buf.String())
	}
}

func TestErrorf(t *testing.T) {
	var buf bytes.Buffer
	u := NewWithWriter(&buf)

	u.Errorf("failed to write %s", "/etc/x")
	if !strings.Contains(buf.String(), "[ERROR] failed to write /etc/x") {
		t.Errorf("Errorf() output = %q, want it to contain the error line", buf.String())
	}
}
