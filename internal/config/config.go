package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/vango-dev/apiroutes/internal/errors"
	"github.com/vango-dev/apiroutes/pkg/routegen"
	"github.com/vango-dev/apiroutes/pkg/routetree"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultDir is the default API source directory.
	DefaultDir = "src/app/api"

	// DefaultOutput is the default generated file.
	DefaultOutput = "src/lib/apiRoutes.ts"

	// DotEnvFile is the environment file loaded from the working directory.
	DotEnvFile = ".env"
)

// Environment variables that override file values.
const (
	EnvDir       = "APIROUTES_DIR"
	EnvOutput    = "APIROUTES_OUTPUT"
	EnvPrefix    = "APIROUTES_PREFIX"
	EnvMarkers   = "APIROUTES_MARKERS"
	EnvTypeName  = "APIROUTES_TYPE_NAME"
	EnvConstName = "APIROUTES_CONST_NAME"
)

// FileNames are the recognized config file names in lookup order.
var FileNames = []string{
	"apiroutes.json",
	"apiroutes.toml",
	"apiroutes.yaml",
	"apiroutes.yml",
}

// ErrNoConfig is returned by FindProjectRoot when no config file exists in
// the start directory or any parent.
var ErrNoConfig = stderrors.New("no apiroutes config file found")

// Config represents the apiroutes configuration.
type Config struct {
	// Dir is the API source directory.
	Dir string `json:"dir,omitempty" toml:"dir,omitempty" yaml:"dir,omitempty"`

	// Output is the generated TypeScript file.
	Output string `json:"output,omitempty" toml:"output,omitempty" yaml:"output,omitempty"`

	// Markers are the file names that mark an endpoint directory.
	Markers []string `json:"markers,omitempty" toml:"markers,omitempty" yaml:"markers,omitempty"`

	// Prefix is prepended to every endpoint path.
	Prefix string `json:"prefix,omitempty" toml:"prefix,omitempty" yaml:"prefix,omitempty"`

	// TypeName is the name of the generated interface.
	TypeName string `json:"typeName,omitempty" toml:"type_name,omitempty" yaml:"type_name,omitempty"`

	// ConstName is the name of the generated constant.
	ConstName string `json:"constName,omitempty" toml:"const_name,omitempty" yaml:"const_name,omitempty"`

	// Header is written verbatim after the generated-file banner.
	Header string `json:"header,omitempty" toml:"header,omitempty" yaml:"header,omitempty"`

	// Ignore lists directory-name patterns that are never scanned.
	Ignore []string `json:"ignore,omitempty" toml:"ignore,omitempty" yaml:"ignore,omitempty"`

	// FollowSymlinks controls whether symlinked directories are scanned.
	// Default: true.
	FollowSymlinks *bool `json:"followSymlinks,omitempty" toml:"follow_symlinks,omitempty" yaml:"follow_symlinks,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string

	// baseDir is used to resolve relative paths when there is no file.
	baseDir string
}

// New creates a new Config with default values.
func New() *Config {
	follow := true
	return &Config{
		Dir:            DefaultDir,
		Output:         DefaultOutput,
		Markers:        []string{routetree.DefaultMarker},
		Prefix:         routetree.DefaultPrefix,
		TypeName:       routegen.DefaultTypeName,
		ConstName:      routegen.DefaultConstName,
		FollowSymlinks: &follow,
	}
}

// Find returns the config file in dir, if any.
func Find(dir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// Load reads configuration from dir. Without a config file in dir it returns
// the defaults, with relative paths resolved against dir.
func Load(dir string) (*Config, error) {
	if path, ok := Find(dir); ok {
		return LoadFile(path)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	cfg := New()
	cfg.baseDir = abs
	return cfg, nil
}

// LoadFile reads configuration from the specified file. The format is chosen
// by extension (.json, .toml, .yaml, .yml). Unknown keys are rejected.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E120").
				WithDetail("Config file not found: " + path).
				Wrap(err)
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := &Config{}
	if err := decode(path, data, cfg); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	cfg.configPath = abs
	cfg.applyDefaults()

	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	ext := strings.ToLower(filepath.Ext(path))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	switch ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			e := parseError(path, "JSON", err)
			if line, col := jsonErrorPosition(data, err); line > 0 {
				e.WithLocation(path, line, col)
			}
			return e
		}

	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			e := parseError(path, "TOML", err)
			var derr *toml.DecodeError
			if stderrors.As(err, &derr) {
				row, col := derr.Position()
				e.WithLocation(path, row, col)
			}
			return e
		}

	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			e := parseError(path, "YAML", err)
			if line := yamlErrorLine(err); line > 0 {
				e.WithLocation(path, line, 0)
			}
			return e
		}

	default:
		return errors.New("E120").
			WithDetail("Unsupported config file extension: " + ext).
			WithSuggestion("Use one of " + strings.Join(FileNames, ", "))
	}

	return nil
}

func parseError(path, format string, err error) *errors.CodedError {
	return errors.New("E120").
		WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
		WithSuggestion("Check that " + filepath.Base(path) + " is valid " + format + " and only uses known keys")
}

// jsonErrorPosition converts a JSON decoder error offset to a line and column.
func jsonErrorPosition(data []byte, err error) (int, int) {
	var offset int64
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case stderrors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case stderrors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return 0, 0
	}
	if offset <= 0 || offset > int64(len(data)) {
		return 0, 0
	}

	before := data[:offset]
	line := bytes.Count(before, []byte("\n")) + 1
	col := len(before) - bytes.LastIndexByte(before, '\n')
	return line, col
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// yamlErrorLine extracts the first line number from a yaml.v3 error.
func yamlErrorLine(err error) int {
	m := yamlLineRe.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	line, _ := strconv.Atoi(m[1])
	return line
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	defaults := New()

	if c.Dir == "" {
		c.Dir = defaults.Dir
	}
	if c.Output == "" {
		c.Output = defaults.Output
	}
	if len(c.Markers) == 0 {
		c.Markers = defaults.Markers
	}
	if c.Prefix == "" {
		c.Prefix = defaults.Prefix
	}
	c.Prefix = routetree.JoinURL(c.Prefix)
	if c.TypeName == "" {
		c.TypeName = defaults.TypeName
	}
	if c.ConstName == "" {
		c.ConstName = defaults.ConstName
	}
	if c.FollowSymlinks == nil {
		c.FollowSymlinks = defaults.FollowSymlinks
	}
}

// ApplyEnv overrides values from APIROUTES_* environment variables.
// APIROUTES_MARKERS is a comma-separated list. Relative APIROUTES_DIR and
// APIROUTES_OUTPUT values resolve against the working directory.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDir); v != "" {
		c.Dir = absPath(v)
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = absPath(v)
	}
	if v := os.Getenv(EnvPrefix); v != "" {
		c.Prefix = routetree.JoinURL(v)
	}
	if v := os.Getenv(EnvMarkers); v != "" {
		c.Markers = SplitList(v)
	}
	if v := os.Getenv(EnvTypeName); v != "" {
		c.TypeName = v
	}
	if v := os.Getenv(EnvConstName); v != "" {
		c.ConstName = v
	}
}

// absPath resolves path against the working directory.
func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// SplitList splits a comma-separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Markers) == 0 {
		return errors.New("E121").
			WithDetail("At least one marker file name is required").
			WithExample(`"markers": ["route.ts"]`)
	}
	for _, m := range c.Markers {
		if strings.TrimSpace(m) == "" {
			return errors.New("E121").
				WithDetail("Marker file names must not be empty").
				WithExample(`"markers": ["route.ts"]`)
		}
		if strings.ContainsAny(m, `/\`) || m == "." || m == ".." {
			return errors.New("E121").
				WithDetail("Marker " + strconv.Quote(m) + " must be a plain file name")
		}
	}
	if !routegen.IsIdentifier(c.TypeName) {
		return errors.New("E121").
			WithDetail("typeName " + strconv.Quote(c.TypeName) + " is not a valid TypeScript identifier")
	}
	if !routegen.IsIdentifier(c.ConstName) {
		return errors.New("E121").
			WithDetail("constName " + strconv.Quote(c.ConstName) + " is not a valid TypeScript identifier")
	}
	for _, pattern := range c.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return errors.New("E121").
				WithDetail("Ignore pattern " + strconv.Quote(pattern) + " is malformed").
				Wrap(err)
		}
	}
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// BaseDir returns the directory relative paths are resolved against.
func (c *Config) BaseDir() string {
	if c.configPath != "" {
		return filepath.Dir(c.configPath)
	}
	return c.baseDir
}

// SourcePath returns the absolute path to the API source directory.
func (c *Config) SourcePath() string {
	return c.resolve(c.Dir)
}

// OutputPath returns the absolute path to the generated file.
func (c *Config) OutputPath() string {
	return c.resolve(c.Output)
}

// FollowSymlinksEnabled reports whether symlinked directories are scanned.
func (c *Config) FollowSymlinksEnabled() bool {
	return c.FollowSymlinks == nil || *c.FollowSymlinks
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(c.BaseDir(), path)
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a config file, or ErrNoConfig.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if _, ok := Find(dir); ok {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoConfig
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the nearest project root at or
// above the working directory, falling back to defaults rooted at the
// working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if stderrors.Is(err, ErrNoConfig) {
		return Load(wd)
	}
	if err != nil {
		return nil, err
	}

	return Load(root)
}

// LoadDotEnv loads dir/.env into the process environment. Variables that are
// already set are kept. A missing file is not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, DotEnvFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.New("E120").
			WithDetail("Failed to load " + path).
			Wrap(err)
	}
	return nil
}
