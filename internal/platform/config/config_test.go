// internal/platform/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"qdev/internal/platform/errors"
)

// clearEnv unsets every QDEV_* variable for the duration of the test and
// points the default config location at an empty directory.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvRoot, EnvMaven, EnvLogSuffix, EnvFailureMarker, EnvProperties, EnvConfig, EnvDebug} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestGetenv(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		def      string
		envValue string
		expected string
	}{
		{
			name:     "env var exists",
			key:      "QDEV_TEST_KEY_1",
			def:      "default",
			envValue: "custom",
			expected: "custom",
		},
		{
			name:     "env var missing - uses default",
			key:      "QDEV_TEST_KEY_MISSING",
			def:      "default",
			expected: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv(tt.key, tt.envValue)
			}

			result := getenv(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}

	t.Run("empty value - uses default", func(t *testing.T) {
		t.Setenv("QDEV_TEST_KEY_EMPTY", "")
		if got := getenv("QDEV_TEST_KEY_EMPTY", "default"); got != "default" {
			t.Errorf("expected default, got %q", got)
		}
	})
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"1", true},
		{"t", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"on", true},
		{" true ", true},

		{"0", false},
		{"false", false},
		{"no", false},
		{"off", false},
		{"", false},
		{"garbage", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseBool(tt.input)
			if result != tt.expected {
				t.Errorf("parseBool(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"-Ddocker,-Dnative", []string{"-Ddocker", "-Dnative"}},
		{" -Da , , -Db ", []string{"-Da", "-Db"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := splitList(tt.input); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("splitList(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		input    string
		expected string
	}{
		{"~", home},
		{"~/dev/quarkus", filepath.Join(home, "dev", "quarkus")},
		{"/opt/quarkus", "/opt/quarkus"},
		{"~other/x", "~other/x"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := expandHome(tt.input); got != tt.expected {
				t.Errorf("expandHome(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c := Config{
		Root:       "  ~/src/quarkus ",
		Maven:      " ",
		Properties: []string{" -Ddocker ", ""},
	}
	normalize(&c)

	if c.Root != filepath.Join(home, "src", "quarkus") {
		t.Errorf("root = %q", c.Root)
	}
	if c.Maven != "mvn" {
		t.Errorf("maven = %q, expected mvn", c.Maven)
	}
	if c.LogSuffix != ".out" || c.FailureMarker != "[ERROR]" || c.Threads != "4C" {
		t.Errorf("defaults not restored: %+v", c)
	}
	if !reflect.DeepEqual(c.Properties, []string{"-Ddocker"}) {
		t.Errorf("properties = %v", c.Properties)
	}

	empty := Config{}
	normalize(&empty)
	if empty.Root != filepath.Join(home, "dev", "quarkus") {
		t.Errorf("empty root should fall back to ~/dev/quarkus, got %q", empty.Root)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Root != filepath.Join(home, "dev", "quarkus") {
		t.Errorf("root = %q", cfg.Root)
	}
	if cfg.Maven != "mvn" {
		t.Errorf("maven = %q", cfg.Maven)
	}
	if !reflect.DeepEqual(cfg.Properties, DefaultProperties) {
		t.Errorf("properties = %v", cfg.Properties)
	}
	if !reflect.DeepEqual(cfg.BytecodeProperties, DefaultBytecodeProperties) {
		t.Errorf("bytecode properties = %v", cfg.BytecodeProperties)
	}
	if cfg.ConfigFile != "" {
		t.Errorf("no config file expected, got %q", cfg.ConfigFile)
	}
	if cfg.Debug {
		t.Error("debug should default to false")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvRoot, "/work/quarkus")
	t.Setenv(EnvMaven, "mvnd")
	t.Setenv(EnvLogSuffix, ".log")
	t.Setenv(EnvFailureMarker, "BUILD FAILURE")
	t.Setenv(EnvProperties, "-Ddocker,-Dfoo=bar")
	t.Setenv(EnvDebug, "yes")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Root != "/work/quarkus" || cfg.Maven != "mvnd" || cfg.LogSuffix != ".log" || cfg.FailureMarker != "BUILD FAILURE" {
		t.Errorf("env not applied: %s", cfg)
	}
	if !reflect.DeepEqual(cfg.Properties, []string{"-Ddocker", "-Dfoo=bar"}) {
		t.Errorf("properties = %v", cfg.Properties)
	}
	if !cfg.Debug {
		t.Error("QDEV_DEBUG=yes should enable debug")
	}
}

func TestLoad_EmptyPropertiesClearsList(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvProperties, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Properties) != 0 {
		t.Errorf("expected no properties, got %v", cfg.Properties)
	}
}

func TestLoad_RejectsNonOptionProperty(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvProperties, "-Ddocker,start-containers")

	_, err := Load()
	if !errors.IsInvalidInput(err) {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestLoad_FromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
root: /srv/quarkus
maven: ./mvnw
properties: ["-Ddocker"]
threads: 2C
failure_marker: "[FATAL]"
`)
	t.Setenv(EnvConfig, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ConfigFile != path {
		t.Errorf("config file = %q, expected %q", cfg.ConfigFile, path)
	}
	if cfg.Root != "/srv/quarkus" || cfg.Maven != "./mvnw" || cfg.Threads != "2C" || cfg.FailureMarker != "[FATAL]" {
		t.Errorf("file not applied: %s", cfg)
	}
	if !reflect.DeepEqual(cfg.Properties, []string{"-Ddocker"}) {
		t.Errorf("properties = %v", cfg.Properties)
	}
	if cfg.LogSuffix != ".out" {
		t.Errorf("unset key should keep default, got %q", cfg.LogSuffix)
	}
	if !reflect.DeepEqual(cfg.BytecodeProperties, DefaultBytecodeProperties) {
		t.Errorf("unset list should keep default, got %v", cfg.BytecodeProperties)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfig, writeConfig(t, "root: /from/file\nmaven: mvnd\n"))
	t.Setenv(EnvRoot, "/from/env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Root != "/from/env" {
		t.Errorf("root = %q, expected env to win", cfg.Root)
	}
	if cfg.Maven != "mvnd" {
		t.Errorf("maven = %q, expected file value", cfg.Maven)
	}
}

func TestLoad_DefaultConfigLocation(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "qdev"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "qdev", "config.yaml"), []byte("log_suffix: .txt\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogSuffix != ".txt" {
		t.Errorf("log suffix = %q, expected .txt", cfg.LogSuffix)
	}
}

func TestLoad_FileErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"explicit file missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }},
		{"malformed yaml", func(t *testing.T) string { return writeConfig(t, "properties: [unterminated\n") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvConfig, tt.path(t))

			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsInvalidInput(err) {
				t.Errorf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestParseSubset(t *testing.T) {
	base := DefaultConfig()
	base.Root = "/src/quarkus"

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cmd SubsetCommand)
	}{
		{
			name: "no flags",
			args: []string{"hibernate-orm"},
			check: func(t *testing.T, cmd SubsetCommand) {
				s := cmd.Settings
				if s.Clean || s.Native || s.RunTests || s.Bytecode || s.Full || s.Debug {
					t.Errorf("unexpected flags set: %+v", s)
				}
				if s.Root != "/src/quarkus" || s.RootOverridden {
					t.Errorf("root = %q overridden=%v", s.Root, s.RootOverridden)
				}
				if !reflect.DeepEqual(cmd.Targets, []string{"hibernate-orm"}) {
					t.Errorf("targets = %v", cmd.Targets)
				}
				if !reflect.DeepEqual(s.FixedProperties, DefaultProperties) {
					t.Errorf("properties = %v", s.FixedProperties)
				}
				if s.Threads != "4C" {
					t.Errorf("threads = %q", s.Threads)
				}
			},
		},
		{
			name: "short flags combined and interspersed",
			args: []string{"a", "-cnt", "b", "-b", "-d", "-r", "quarkus-core"},
			check: func(t *testing.T, cmd SubsetCommand) {
				s := cmd.Settings
				if !s.Clean || !s.Native || !s.RunTests || !s.Bytecode || !s.Debug {
					t.Errorf("flags not set: %+v", s)
				}
				if s.ResumeFrom != "quarkus-core" {
					t.Errorf("resume = %q", s.ResumeFrom)
				}
				if !reflect.DeepEqual(cmd.Targets, []string{"a", "b"}) {
					t.Errorf("targets = %v", cmd.Targets)
				}
			},
		},
		{
			name: "long flags",
			args: []string{"--full", "--clean", "--resume=:quarkus-arc", "--root", "/other"},
			check: func(t *testing.T, cmd SubsetCommand) {
				s := cmd.Settings
				if !s.Full || !s.Clean {
					t.Errorf("flags not set: %+v", s)
				}
				if s.ResumeFrom != ":quarkus-arc" {
					t.Errorf("resume = %q", s.ResumeFrom)
				}
				if s.Root != "/other" || !s.RootOverridden {
					t.Errorf("root = %q overridden=%v", s.Root, s.RootOverridden)
				}
				if len(cmd.Targets) != 0 {
					t.Errorf("targets = %v", cmd.Targets)
				}
			},
		},
		{
			name: "root given with default value still counts as overridden",
			args: []string{"--root", "/src/quarkus", "x"},
			check: func(t *testing.T, cmd SubsetCommand) {
				if !cmd.Settings.RootOverridden {
					t.Error("expected RootOverridden")
				}
			},
		},
		{
			name: "help",
			args: []string{"-h"},
			check: func(t *testing.T, cmd SubsetCommand) {
				if !cmd.Help {
					t.Error("expected Help")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseSubset(tt.args, base)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, cmd)
		})
	}
}

func TestParseSubset_DebugDefaultFromConfig(t *testing.T) {
	base := DefaultConfig()
	base.Debug = true

	cmd, err := ParseSubset([]string{"x"}, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cmd.Settings.Debug {
		t.Error("config debug should carry into settings")
	}
}

func TestParseSubset_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--parallel", "x"}},
		{"resume without value", []string{"x", "-r"}},
		{"empty root", []string{"--root", " ", "x"}},
		{"resume with group id", []string{"-r", "io.quarkus:quarkus-core", "x"}},
		{"resume with spaces", []string{"--resume", "quarkus core", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSubset(tt.args, DefaultConfig())
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsInvalidInput(err) {
				t.Errorf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestParseInstall(t *testing.T) {
	base := DefaultConfig()
	base.Root = "/src/quarkus"

	cmd, err := ParseInstall([]string{"-c", "core/runtime", "-r", "/alt", "./local", "--test"}, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := cmd.Settings
	if !s.Clean || !s.RunTests {
		t.Errorf("flags not set: %+v", s)
	}
	if s.Root != "/alt" || !s.RootOverridden {
		t.Errorf("root = %q overridden=%v", s.Root, s.RootOverridden)
	}
	if !reflect.DeepEqual(cmd.Modules, []string{"core/runtime", "./local"}) {
		t.Errorf("modules = %v", cmd.Modules)
	}

	// -n belongs to subset only
	if _, err := ParseInstall([]string{"-n", "x"}, base); !errors.IsInvalidInput(err) {
		t.Errorf("expected invalid input for -n, got %v", err)
	}
}

func TestPrintHelp(t *testing.T) {
	var b strings.Builder
	PrintHelp(&b)

	for _, want := range []string{"qdev subset", "qdev install", "--resume", "QDEV_ROOT"} {
		if !strings.Contains(b.String(), want) {
			t.Errorf("help text missing %q", want)
		}
	}
}

func TestPrintVersion(t *testing.T) {
	var b strings.Builder
	PrintVersion(&b, "1.2.3", "abc123", "2026-01-01")

	if !strings.HasPrefix(b.String(), "qdev 1.2.3\n") {
		t.Errorf("unexpected version output: %q", b.String())
	}
	if !strings.Contains(b.String(), "abc123") {
		t.Error("commit missing")
	}
}
