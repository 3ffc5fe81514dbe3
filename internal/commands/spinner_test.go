package commands

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"
)

func TestSpinnerLifecycle_StopWithSuccess(t *testing.T) {
	var out bytes.Buffer
	s := newSpinner(&out, "Connecting")
	s.start()
	// Let it spin briefly
	time.Sleep(100 * time.Millisecond)
	s.stopWithSuccess("done")

	got := out.String()
	if !strings.Contains(got, "Connecting") {
		t.Errorf("expected a rendered frame, got %q", got)
	}
	if !strings.Contains(got, "done") {
		t.Errorf("expected success message, got %q", got)
	}
}

func TestSpinnerLifecycle_StopWithError(t *testing.T) {
	s := newSpinner(io.Discard, "Connecting")
	s.start()
	time.Sleep(30 * time.Millisecond)
	// Should stop cleanly on error (no panic)
	s.stopWithError()
	// A second stop must not close the channel again
	s.stopOnce()
}
