package tail

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInitialOffset(t *testing.T) {
	cases := []struct {
		size, want int64
	}{
		{0, 0},
		{10000, 0},
		{16384, 0},
		{16385, 1},
		{20000, 3616},
	}
	for _, c := range cases {
		if got := initialOffset(c.size); got != c.want {
			t.Fatalf("initialOffset(%d): expected %d, got %d", c.size, c.want, got)
		}
	}
}

func appendFile(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		t.Fatalf("open append %s: %v", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("append %s: %v", path, err)
	}
}

func replaceFile(t *testing.T, path, content string) {
	t.Helper()
	next := path + ".next"
	writeFile(t, next, content)
	if err := os.Rename(next, path); err != nil {
		t.Fatalf("rename: %v", err)
	}
}

// runSession drives one session to completion with the given clock and
// returns the lines it delivered.
func runSession(t *testing.T, path string, clock *fakeClock, obs *mockObs) ([]string, error) {
	t.Helper()

	var lines []string
	sess := &session{
		id:    "test-session",
		path:  path,
		poll:  time.Second,
		clock: clock,
		obs:   obs,
		handle: func(line []byte) {
			lines = append(lines, string(line))
		},
	}

	done := make(chan error, 1)
	go func() {
		done <- sess.run(context.Background())
	}()

	select {
	case err := <-done:
		return lines, err
	case <-time.After(10 * time.Second):
		t.Fatalf("session did not end")
		return nil, nil
	}
}

func TestSessionStreamsThenEndsOnRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sdr.json")
	writeFile(t, path, "one\ntwo\npar")

	clock := &fakeClock{}
	clock.onSleep = func(n int) {
		switch n {
		case 1:
			// Complete the pending line while the session idles at EOF.
			appendFile(t, path, "tial\n")
		case 2:
			replaceFile(t, path, "rotated away\n")
		}
	}

	obs := newMockObs()
	lines, err := runSession(t, path, clock, obs)
	if err != nil {
		t.Fatalf("expected clean end on rotation, got %v", err)
	}

	want := []string{"one", "two", "partial"}
	if len(lines) != len(want) {
		t.Fatalf("expected lines %v, got %v", want, lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("expected lines %v, got %v", want, lines)
		}
	}
	if got := obs.counter("tempexporter_rotations_total"); got != 1 {
		t.Fatalf("expected 1 rotation, got %f", got)
	}
}

func TestSessionEndsOnTruncation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sdr.json")
	writeFile(t, path, "one\ntwo\n")

	clock := &fakeClock{}
	clock.onSleep = func(n int) {
		if n == 1 {
			if err := os.Truncate(path, 0); err != nil {
				t.Errorf("truncate: %v", err)
			}
		}
	}

	obs := newMockObs()
	lines, err := runSession(t, path, clock, obs)
	if err != nil {
		t.Fatalf("expected clean end on truncation, got %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines before truncation, got %v", lines)
	}
	if got := obs.counter("tempexporter_rotations_total"); got != 1 {
		t.Fatalf("expected truncation counted as rotation, got %f", got)
	}
}

func TestSessionOpenErrorForMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	sess := &session{
		id:     "test-session",
		path:   path,
		poll:   time.Second,
		clock:  &fakeClock{},
		obs:    newMockObs(),
		handle: func([]byte) {},
	}

	err := sess.run(context.Background())
	var openErr *OpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("expected OpenError, got %v", err)
	}
}

func TestSessionSkipsHistoryBeyondWindow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sdr.json")

	// A head line followed by enough filler to push it out of the 16 KiB
	// catch-up window.
	var b strings.Builder
	b.WriteString("HEADLINE\n")
	filler := strings.Repeat("f", 99) + "\n"
	for b.Len() < 20000 {
		b.WriteString(filler)
	}
	writeFile(t, path, b.String())

	clock := &fakeClock{}
	clock.onSleep = func(n int) {
		if n == 1 {
			replaceFile(t, path, "done\n")
		}
	}

	lines, err := runSession(t, path, clock, newMockObs())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if len(lines) == 0 {
		t.Fatalf("expected lines from within the window")
	}
	for _, line := range lines {
		if line == "HEADLINE" {
			t.Fatalf("expected head of file to be skipped")
		}
	}
}

func TestSessionResumesAtSameOffsetAfterIdle(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sdr.json")
	writeFile(t, path, "one\n")

	clock := &fakeClock{}
	clock.onSleep = func(n int) {
		switch n {
		case 1, 2:
			// Two idle polls with no growth.
		case 3:
			appendFile(t, path, "two\n")
		case 4:
			replaceFile(t, path, "gone\n")
		}
	}

	lines, err := runSession(t, path, clock, newMockObs())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if len(lines) != 2 || lines[0] != "one" || lines[1] != "two" {
		t.Fatalf("expected [one two], got %v", lines)
	}
}
