package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"datepick/internal/config"
	"datepick/internal/date"
	"datepick/internal/picker"
)

var today = date.New(2026, 10, 16)

// capture redirects the output streams for the duration of the test.
func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := stdout, stderr
	stdout, stderr = &out, &errOut
	t.Cleanup(func() { stdout, stderr = oldOut, oldErr })
	return &out, &errOut
}

func testConfig() *config.Config {
	return &config.Config{
		Mode:   config.ModeSingle,
		Picker: picker.DefaultConfig(),
		Rules: config.RulesConfig{
			BlockedWeekdays:  []time.Weekday{time.Sunday},
			HighlightedDates: []date.CalendarDate{date.New(2026, 10, 31)},
		},
	}
}

func TestRun_Usage(t *testing.T) {
	out, _ := capture(t)

	if code := Run(nil, testConfig(), date.FixedAt(today)); code != 1 {
		t.Errorf("expected exit 1 without args, got %d", code)
	}
	if code := Run([]string{"help"}, testConfig(), date.FixedAt(today)); code != 0 {
		t.Errorf("expected exit 0 for help, got %d", code)
	}
	if !strings.Contains(out.String(), "Usage: datepick") {
		t.Errorf("expected usage text, got %q", out.String())
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	_, errOut := capture(t)

	if code := Run([]string{"frobnicate"}, testConfig(), date.FixedAt(today)); code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(errOut.String(), "frobnicate") {
		t.Errorf("expected unknown command in stderr, got %q", errOut.String())
	}
}

func TestRun_Parse(t *testing.T) {
	tests := []struct {
		args []string
		want string
		code int
	}{
		{[]string{"+3"}, "2026-10-19", 0},
		{[]string{"2027-01-05"}, "2027-01-05", 0},
		{[]string{"tomorrow"}, "2026-10-17", 0},
		{[]string{"next fri"}, "2026-10-23", 0},
		{[]string{"next", "fri"}, "2026-10-23", 0},
		{[]string{"gibberish"}, "", 1},
		{nil, "", 1},
	}

	for _, tt := range tests {
		out, _ := capture(t)
		code := Run(append([]string{"parse"}, tt.args...), testConfig(), date.FixedAt(today))
		if code != tt.code {
			t.Errorf("parse %v: expected exit %d, got %d", tt.args, tt.code, code)
		}
		if got := strings.TrimSpace(out.String()); got != tt.want {
			t.Errorf("parse %v: expected %q, got %q", tt.args, tt.want, got)
		}
	}
}

func TestRun_Check(t *testing.T) {
	out, _ := capture(t)

	code := Run([]string{"check", "2026-10-19", "2026-10-18", "2026-10-01", "2026-10-31"}, testConfig(), date.FixedAt(today))
	if code != 1 {
		t.Errorf("expected exit 1 when a date is unavailable, got %d", code)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %q", out.String())
	}
	wants := []string{"available", "blocked", "outside allowed range", "highlighted"}
	for i, want := range wants {
		if !strings.HasSuffix(lines[i], want) {
			t.Errorf("line %d: expected suffix %q, got %q", i, want, lines[i])
		}
	}
}

func TestRun_CheckAvailable(t *testing.T) {
	capture(t)

	if code := Run([]string{"check", "+3"}, testConfig(), date.FixedAt(today)); code != 0 {
		t.Errorf("expected exit 0, got %d", code)
	}
}

func TestRun_Months(t *testing.T) {
	out, _ := capture(t)

	if code := Run([]string{"months", "--from", "2027-02", "-n", "1"}, testConfig(), date.FixedAt(today)); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	got := out.String()
	if !strings.Contains(got, "February 2027") {
		t.Errorf("expected February 2027 title, got:\n%s", got)
	}
	if strings.Contains(got, "March 2027") {
		t.Errorf("expected a single month, got:\n%s", got)
	}
	if !strings.Contains(got, "28") {
		t.Errorf("expected the last day of February, got:\n%s", got)
	}
}

func TestRun_MonthsBadInput(t *testing.T) {
	_, errOut := capture(t)

	if code := Run([]string{"months", "--from", "February"}, testConfig(), date.FixedAt(today)); code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(errOut.String(), "YYYY-MM") {
		t.Errorf("expected format hint, got %q", errOut.String())
	}
	if code := Run([]string{"months", "-n", "0"}, testConfig(), date.FixedAt(today)); code != 1 {
		t.Errorf("expected exit 1 for zero months, got %d", code)
	}
}
