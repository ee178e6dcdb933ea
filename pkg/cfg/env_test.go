package cfg

import (
	"testing"
	"time"
)

func TestString(t *testing.T) {
	t.Setenv("CFG_TEST_STR", "  value ")
	t.Setenv("CFG_TEST_BLANK", "   ")

	if got := String("CFG_TEST_STR", "def"); got != "value" {
		t.Fatalf("String()=%q want value", got)
	}
	if got := String("CFG_TEST_BLANK", "def"); got != "def" {
		t.Fatalf("String(blank)=%q want def", got)
	}
	if got := String("CFG_TEST_UNSET", "def"); got != "def" {
		t.Fatalf("String(unset)=%q want def", got)
	}
}

func TestInt(t *testing.T) {
	t.Setenv("CFG_TEST_INT", "12")
	t.Setenv("CFG_TEST_BAD", "twelve")

	if got := Int("CFG_TEST_INT", 1); got != 12 {
		t.Fatalf("Int()=%d want 12", got)
	}
	if got := Int("CFG_TEST_BAD", 1); got != 1 {
		t.Fatalf("Int(bad)=%d want 1", got)
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		val  string
		want time.Duration
	}{
		{"15m", 15 * time.Minute},
		{"120", 120 * time.Second},
		{"soon", time.Second},
		{"", time.Second},
	}
	for _, tt := range tests {
		t.Setenv("CFG_TEST_DUR", tt.val)
		if got := Duration("CFG_TEST_DUR", time.Second); got != tt.want {
			t.Fatalf("Duration(%q)=%s want %s", tt.val, got, tt.want)
		}
	}
}

func TestIsDev(t *testing.T) {
	for env, want := range map[string]bool{
		"dev":         true,
		"Development": true,
		"local":       true,
		"production":  false,
		"":            false,
	} {
		if got := IsDev(env); got != want {
			t.Fatalf("IsDev(%q)=%v want %v", env, got, want)
		}
	}
}
