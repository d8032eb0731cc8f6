package config

import (
	"os"
	"testing"
	"time"
)

func setenv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set env var: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Unsetenv(key); err != nil {
			t.Errorf("failed to unset env var: %v", err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"listen port", cfg.ListenPort, ":8080"},
		{"history limit", cfg.HistoryLimit, 0},
		{"state ttl", cfg.StateTTL, time.Duration(0)},
		{"gc interval", cfg.SessionGCInterval, 10 * time.Minute},
		{"idle ttl", cfg.SessionIdleTTL, time.Hour},
		{"chat delay min", cfg.ChatDelayMin, 900 * time.Millisecond},
		{"chat delay max", cfg.ChatDelayMax, 2 * time.Second},
		{"catalog file", cfg.CatalogFile, ""},
		{"use redis", cfg.UseRedis(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	setenv(t, "STATUARY_REDIS_ADDR", "localhost:6379")
	setenv(t, "STATUARY_HISTORY_LIMIT", "25")
	setenv(t, "STATUARY_CHAT_DELAY_MIN", "10ms")
	setenv(t, "STATUARY_CHAT_DELAY_MAX", "20ms")
	setenv(t, "STATUARY_ALLOWED_CIDRS", "10.0.0.0/8, 127.0.0.1")
	setenv(t, "STATUARY_REDIS_BREAKER_FAILURES", "2")
	setenv(t, "STATUARY_REDIS_DIAL_TIMEOUT", "750ms")
	setenv(t, "REDIS_DIAL_TIMEOUT", "9s")

	cfg := Load()

	if !cfg.UseRedis() {
		t.Error("UseRedis() = false with an address set")
	}
	if cfg.HistoryLimit != 25 {
		t.Errorf("HistoryLimit = %d, want 25", cfg.HistoryLimit)
	}
	if cfg.ChatDelayMin != 10*time.Millisecond || cfg.ChatDelayMax != 20*time.Millisecond {
		t.Errorf("chat delays = %v..%v", cfg.ChatDelayMin, cfg.ChatDelayMax)
	}
	if len(cfg.AllowedCIDRS) != 2 || cfg.AllowedCIDRS[1] != "127.0.0.1" {
		t.Errorf("AllowedCIDRS = %v", cfg.AllowedCIDRS)
	}
	if cfg.BreakerFailures != 2 {
		t.Errorf("BreakerFailures = %d, want 2", cfg.BreakerFailures)
	}
	if cfg.RedisDT != 750*time.Millisecond {
		t.Errorf("RedisDT = %v, want 750ms (unprefixed names are ignored)", cfg.RedisDT)
	}
}

func TestLoadPanics(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "delay max below min",
			env:  map[string]string{"STATUARY_CHAT_DELAY_MIN": "2s", "STATUARY_CHAT_DELAY_MAX": "1s"},
		},
		{
			name: "chat delay not below request timeout",
			env:  map[string]string{"STATUARY_CHAT_DELAY_MAX": "5s", "STATUARY_REQUEST_TIMEOUT": "5s"},
		},
		{
			name: "negative history limit",
			env:  map[string]string{"STATUARY_HISTORY_LIMIT": "-1"},
		},
		{
			name: "redis password required but missing",
			env: map[string]string{
				"STATUARY_REDIS_ADDR":              "localhost:6379",
				"STATUARY_REDIS_PASSWORD_REQUIRED": "true",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				setenv(t, k, v)
			}

			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Load() should have panicked")
				}
			}()

			Load()
		})
	}
}

func TestRequireEnv(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		value     string
		shouldSet bool
		wantPanic bool
	}{
		{
			name:      "variable set",
			key:       "TEST_VAR",
			value:     "test_value",
			shouldSet: true,
			wantPanic: false,
		},
		{
			name:      "variable not set",
			key:       "TEST_VAR_MISSING",
			shouldSet: false,
			wantPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				setenv(t, tt.key, tt.value)
			}

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnv() should have panicked")
					}
				}()
			}

			result := requireEnv(tt.key)
			if !tt.wantPanic && result != tt.value {
				t.Errorf("requireEnv() = %v, want %v", result, tt.value)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{" a , b ,, c ", []string{"a", "b", "c"}},
		{`"https://museum.example", 'http://localhost:5173'`, []string{"https://museum.example", "http://localhost:5173"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := splitAndTrim(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("splitAndTrim(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestGetenvFloat(t *testing.T) {
	setenv(t, "TEST_FLOAT", "2.5")
	setenv(t, "TEST_FLOAT_INVALID", "x")

	if got := getenvFloat("TEST_FLOAT", 1); got != 2.5 {
		t.Errorf("getenvFloat() = %v, want 2.5", got)
	}
	if got := getenvFloat("TEST_FLOAT_INVALID", 1); got != 1 {
		t.Errorf("getenvFloat() = %v, want default 1", got)
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				setenv(t, tt.key, tt.value)
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{"true value", "TEST_BOOL", "true", false, true},
		{"false value", "TEST_BOOL_FALSE", "false", true, false},
		{"invalid value uses default", "TEST_BOOL_INVALID", "invalid", true, true},
		{"missing variable uses default", "TEST_BOOL_MISSING", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				setenv(t, tt.key, tt.value)
			}

			if result := mustBool(tt.key, tt.def); result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}
