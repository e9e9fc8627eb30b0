package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultSrc = "src"
	DefaultOut = "out"
)

var ErrNoManifest = errors.New("no " + ManifestName + " found")

type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type BuildConfig struct {
	Src string `toml:"src"`
	Out string `toml:"out"`
	// Jobs bounds parallel parsing; zero means GOMAXPROCS.
	Jobs int `toml:"jobs"`
	// MaxRounds bounds generic instantiation; zero uses the compiler default.
	MaxRounds int `toml:"max_rounds"`
}

// Project is a loaded wss.toml with its location.
type Project struct {
	Path   string
	Root   string
	Config Config
}

// SrcDir is the absolute source directory.
func (p *Project) SrcDir() string { return filepath.Join(p.Root, filepath.FromSlash(p.Config.Build.Src)) }

// OutDir is the absolute output directory.
func (p *Project) OutDir() string { return filepath.Join(p.Root, filepath.FromSlash(p.Config.Build.Out)) }

// Load finds wss.toml upward from startDir and decodes it. It returns
// ErrNoManifest when there is none.
func Load(startDir string) (*Project, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoManifest
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return &Project{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// LoadConfig decodes and validates a single manifest file, filling in
// defaults for the [build] table.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if cfg.Build.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [build].jobs must not be negative", path)
	}
	if cfg.Build.Src == "" {
		cfg.Build.Src = DefaultSrc
	}
	if cfg.Build.Out == "" {
		cfg.Build.Out = DefaultOut
	}
	return cfg, nil
}

// WriteConfig encodes cfg to path, refusing to overwrite an existing file.
func WriteConfig(path string, cfg Config) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
