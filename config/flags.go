package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flags holds CLI flag names for configuration loading, allowing callers
// to customize flag names while keeping sensible defaults via [NewFileFlags].
type Flags struct {
	ConfigPath string
	Theme      string
	Debug      string
}

// NewFlags returns the default flag names used by [FileFlags.RegisterFlags].
func NewFlags() Flags {
	return Flags{
		ConfigPath: "config",
		Theme:      "theme",
		Debug:      "debug",
	}
}

// FileFlags holds CLI flag values for locating and overriding a Config
// document. Create one with [Flags.NewFileFlags], register its flags
// with [FileFlags.RegisterFlags], and resolve the final Config with
// [FileFlags.Load].
type FileFlags struct {
	Path  string
	Theme string
	Debug bool
	Flags Flags
}

// NewFileFlags builds a [FileFlags] embedding these flag names.
func (f Flags) NewFileFlags() *FileFlags {
	return &FileFlags{Flags: f}
}

// RegisterFlags adds configuration flags to the given [*pflag.FlagSet].
func (c *FileFlags) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Path, c.Flags.ConfigPath, "", "path to a JSON or YAML host configuration document")
	flags.StringVar(&c.Theme, c.Flags.Theme, "", "theme name override")
	flags.BoolVar(&c.Debug, c.Flags.Debug, false, "enable debug mode (mirrors bus emissions to the log)")
}

// RegisterCompletions registers shell completions for configuration flags on cmd.
func (c *FileFlags) RegisterCompletions(cmd *cobra.Command) error {
	return cmd.RegisterFlagCompletionFunc(c.Flags.ConfigPath,
		cobra.FixedCompletions(nil, cobra.ShellCompDirectiveDefault))
}

// Load resolves the final Config: Default, merged with the document at
// c.Path (if set, chosen by file extension — ".yaml"/".yml" loads as
// YAML, anything else as JSON), merged with this FileFlags' own
// flag-level overrides.
func (c *FileFlags) Load() (Config, error) {
	base := Default()
	if c.Path != "" {
		var err error
		if ext := strings.ToLower(filepath.Ext(c.Path)); ext == ".yaml" || ext == ".yml" {
			base, err = LoadYAML(c.Path)
		} else {
			base, err = LoadJSON(c.Path)
		}
		if err != nil {
			return Config{}, err
		}
	}

	override := Config{Theme: c.Theme, Debug: c.Debug}
	return Merge(base, override), nil
}
