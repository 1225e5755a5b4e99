// internal/platform/config/config.go
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"qdev/internal/core/domain"
	"qdev/internal/platform/errors"
	"qdev/internal/platform/validator"
)

// Environment variables read by Load.
const (
	EnvRoot          = "QDEV_ROOT"
	EnvMaven         = "QDEV_MVN"
	EnvLogSuffix     = "QDEV_LOG_SUFFIX"
	EnvFailureMarker = "QDEV_FAILURE_MARKER"
	EnvProperties    = "QDEV_PROPERTIES"
	EnvConfig        = "QDEV_CONFIG"
	EnvDebug         = "QDEV_DEBUG"
)

const (
	defaultMaven         = "mvn"
	defaultLogSuffix     = ".out"
	defaultFailureMarker = "[ERROR]"
	defaultThreads       = "4C"
)

// DefaultProperties are passed to every module build.
var DefaultProperties = []string{
	"-Ddocker",
	"-Dtest-postgresql",
	"-Dtest-containers",
	"-Dstart-containers",
}

// DefaultBytecodeProperties make Quarkus dump generated, decompiled and
// transformed classes under target/q.
var DefaultBytecodeProperties = []string{
	"-Dquarkus.package.quiltflower.enabled=true",
	"-Dquarkus.debug.generated-classes-dir=target/q/generated",
	"-Dquarkus.debug.generated-sources-dir=target/q/sources",
	"-Dquarkus.debug.transformed-classes-dir=target/q/transformed",
}

// Config is everything that is not a per-invocation flag.
type Config struct {
	Root               string
	Maven              string
	LogSuffix          string
	FailureMarker      string
	Properties         []string
	BytecodeProperties []string
	Threads            string

	// Debug turns on command echo for every run, as if -d were always given.
	Debug bool

	// ConfigFile is the YAML file that was read, empty if none.
	ConfigFile string
}

// fileConfig mirrors the YAML file. Unset keys keep the lower layer's value.
type fileConfig struct {
	Root               string   `yaml:"root"`
	Maven              string   `yaml:"maven"`
	Properties         []string `yaml:"properties"`
	BytecodeProperties []string `yaml:"bytecode_properties"`
	LogSuffix          string   `yaml:"log_suffix"`
	FailureMarker      string   `yaml:"failure_marker"`
	Threads            string   `yaml:"threads"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Root:               defaultRoot(),
		Maven:              defaultMaven,
		LogSuffix:          defaultLogSuffix,
		FailureMarker:      defaultFailureMarker,
		Properties:         append([]string(nil), DefaultProperties...),
		BytecodeProperties: append([]string(nil), DefaultBytecodeProperties...),
		Threads:            defaultThreads,
	}
}

// Load builds the Config: defaults, then ./.env, then the YAML file, then
// QDEV_* variables. Flags are applied later by ParseSubset and ParseInstall.
func Load() (Config, error) {
	cfg := DefaultConfig()

	// .env is optional
	_ = godotenv.Load()

	path, explicit := configPath()
	if err := loadFromFile(&cfg, path, explicit); err != nil {
		return cfg, err
	}

	loadFromEnv(&cfg)
	normalize(&cfg)

	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// configPath returns QDEV_CONFIG when set, otherwise ~/.config/qdev/config.yaml.
func configPath() (string, bool) {
	if v := strings.TrimSpace(getenv(EnvConfig, "")); v != "" {
		return expandHome(v), true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(dir, "qdev", "config.yaml"), false
}

// loadFromFile merges the YAML file at path. A missing file is only an error
// when it was named explicitly.
func loadFromFile(cfg *Config, path string, explicit bool) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return errors.Wrapf(errors.ErrInvalidInput, "reading config %s: %v", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "parsing config %s: %v", path, err)
	}

	if fc.Root != "" {
		cfg.Root = fc.Root
	}
	if fc.Maven != "" {
		cfg.Maven = fc.Maven
	}
	if fc.Properties != nil {
		cfg.Properties = fc.Properties
	}
	if fc.BytecodeProperties != nil {
		cfg.BytecodeProperties = fc.BytecodeProperties
	}
	if fc.LogSuffix != "" {
		cfg.LogSuffix = fc.LogSuffix
	}
	if fc.FailureMarker != "" {
		cfg.FailureMarker = fc.FailureMarker
	}
	if fc.Threads != "" {
		cfg.Threads = fc.Threads
	}
	cfg.ConfigFile = path
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := getenv(EnvRoot, ""); v != "" {
		cfg.Root = v
	}
	if v := getenv(EnvMaven, ""); v != "" {
		cfg.Maven = v
	}
	if v := getenv(EnvLogSuffix, ""); v != "" {
		cfg.LogSuffix = v
	}
	if v := getenv(EnvFailureMarker, ""); v != "" {
		cfg.FailureMarker = v
	}
	if v := getenv(EnvDebug, ""); v != "" {
		cfg.Debug = parseBool(v)
	}
	// QDEV_PROPERTIES="" clears the list
	if v, ok := os.LookupEnv(EnvProperties); ok {
		cfg.Properties = splitList(v)
	}
}

func normalize(c *Config) {
	c.Root = strings.TrimSpace(c.Root)
	if c.Root == "" {
		c.Root = defaultRoot()
	}
	c.Root = absPath(expandHome(c.Root))

	c.Maven = strings.TrimSpace(c.Maven)
	if c.Maven == "" {
		c.Maven = defaultMaven
	}
	if c.LogSuffix == "" {
		c.LogSuffix = defaultLogSuffix
	}
	if c.FailureMarker == "" {
		c.FailureMarker = defaultFailureMarker
	}
	c.Threads = strings.TrimSpace(c.Threads)
	if c.Threads == "" {
		c.Threads = defaultThreads
	}
	c.Properties = compact(c.Properties)
	c.BytecodeProperties = compact(c.BytecodeProperties)
}

// validate rejects property lists that would not reach Maven as single options.
func validate(c Config) error {
	for _, list := range [][]string{c.Properties, c.BytecodeProperties} {
		for _, p := range list {
			if !validator.IsMavenOption(p) {
				return errors.Wrapf(errors.ErrInvalidInput, "property %q is not a Maven option", p)
			}
		}
	}
	return nil
}

// SubsetCommand is a parsed "qdev subset" invocation.
type SubsetCommand struct {
	Settings domain.BuildSettings
	Targets  []string
	Help     bool
}

// ParseSubset parses the subset flags on top of base. Targets are the
// remaining positional arguments, in order.
func ParseSubset(args []string, base Config) (SubsetCommand, error) {
	var cmd SubsetCommand
	s := settingsFrom(base)

	fs := newFlagSet("subset")
	fs.BoolVarP(&s.Full, "full", "f", false, "Build the whole tree")
	fs.BoolVarP(&s.Clean, "clean", "c", false, "Run the clean goal first")
	fs.BoolVarP(&s.Native, "native", "n", false, "Build native images")
	fs.BoolVarP(&s.RunTests, "test", "t", false, "Run tests")
	fs.StringVarP(&s.ResumeFrom, "resume", "r", "", "Resume from artifact id")
	fs.StringVar(&s.Root, "root", s.Root, "Source tree root")
	fs.BoolVarP(&s.Bytecode, "bytecode", "b", false, "Dump generated bytecode")
	fs.BoolVarP(&s.Debug, "debug", "d", s.Debug, "Echo commands before running them")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			cmd.Help = true
			return cmd, nil
		}
		return cmd, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	if s.ResumeFrom != "" && !validator.IsResumeSelector(s.ResumeFrom) {
		return cmd, errors.Wrapf(errors.ErrInvalidInput, "--resume %q is not an artifactId", s.ResumeFrom)
	}
	root, err := overrideRoot(fs, s.Root)
	if err != nil {
		return cmd, err
	}
	s.Root = root
	s.RootOverridden = fs.Changed("root")

	cmd.Settings = s
	cmd.Targets = fs.Args()
	return cmd, nil
}

// InstallCommand is a parsed "qdev install" invocation.
type InstallCommand struct {
	Settings domain.BuildSettings
	Modules  []string
	Help     bool
}

// ParseInstall parses the install flags on top of base.
func ParseInstall(args []string, base Config) (InstallCommand, error) {
	var cmd InstallCommand
	s := settingsFrom(base)

	fs := newFlagSet("install")
	fs.BoolVarP(&s.Clean, "clean", "c", false, "Run the clean goal first")
	fs.BoolVarP(&s.RunTests, "test", "t", false, "Run tests")
	fs.StringVarP(&s.Root, "root", "r", s.Root, "Source tree root")
	fs.BoolVarP(&s.Debug, "debug", "d", s.Debug, "Echo commands before running them")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			cmd.Help = true
			return cmd, nil
		}
		return cmd, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	root, err := overrideRoot(fs, s.Root)
	if err != nil {
		return cmd, err
	}
	s.Root = root
	s.RootOverridden = fs.Changed("root")

	cmd.Settings = s
	cmd.Modules = fs.Args()
	return cmd, nil
}

// overrideRoot checks and expands the value of the root flag.
func overrideRoot(fs *pflag.FlagSet, root string) (string, error) {
	if validator.IsEmpty(root) {
		return "", errors.Wrap(errors.ErrInvalidInput, "--root must not be empty")
	}
	if !fs.Changed("root") {
		return root, nil
	}
	return absPath(expandHome(strings.TrimSpace(root))), nil
}

func settingsFrom(c Config) domain.BuildSettings {
	return domain.BuildSettings{
		FixedProperties:    append([]string(nil), c.Properties...),
		BytecodeProperties: append([]string(nil), c.BytecodeProperties...),
		Threads:            c.Threads,
		Root:               c.Root,
		Debug:              c.Debug,
	}
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// Helpers

func defaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("dev", "quarkus")
	}
	return filepath.Join(home, "dev", "quarkus")
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// absPath makes p absolute so module paths can be made relative to it.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func splitList(v string) []string {
	return compact(strings.Split(v, ","))
}

// compact trims entries and drops empty ones.
func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// String renders the effective configuration for debug logging.
func (c Config) String() string {
	return fmt.Sprintf("root=%s maven=%s suffix=%s marker=%q threads=%s properties=%v file=%s",
		c.Root, c.Maven, c.LogSuffix, c.FailureMarker, c.Threads, c.Properties, c.ConfigFile)
}
