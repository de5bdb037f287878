// Package config defines the deeply-merged host configuration object:
// the single settings surface a hosting application hands the renderer
// to control theming, which components are available, transformer
// behaviour, streaming cadence, action handling, and security limits.
//
// A zero Config is invalid; build one with Default and merge host
// overrides on top with Merge, or load a whole document with LoadJSON
// or LoadYAML.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// TransformerMode mirrors detect.Mode without importing the detect
// package, keeping config a leaf dependency any package can import.
type TransformerMode string

const (
	TransformerOff     TransformerMode = "off"
	TransformerPassive TransformerMode = "passive"
	TransformerAuto    TransformerMode = "auto"
)

// TransformerConfig controls the pattern-detection/enrichment pipeline.
type TransformerConfig struct {
	Mode                TransformerMode `json:"mode" yaml:"mode"`
	Detectors           []string        `json:"detectors" yaml:"detectors"` // ["all"] means every registered detector
	ConfidenceThreshold float64         `json:"confidenceThreshold" yaml:"confidenceThreshold"`
}

// RendererConfig controls static- and stream-render output shaping.
type RendererConfig struct {
	ShadowDOM   bool `json:"shadowDom" yaml:"shadowDom"`
	Sanitize    bool `json:"sanitize" yaml:"sanitize"`
	ProseStyles bool `json:"proseStyles" yaml:"proseStyles"`
}

// StreamingConfig controls the stream renderer's pacing and presentation.
type StreamingConfig struct {
	Enabled         bool   `json:"enabled" yaml:"enabled"`
	SkeletonDelayMS int    `json:"skeletonDelay" yaml:"skeletonDelay"`
	ShowCursor      bool   `json:"showCursor" yaml:"showCursor"`
	CursorChar      string `json:"cursorChar" yaml:"cursorChar"`
	AutoScroll      bool   `json:"autoScroll" yaml:"autoScroll"`
}

// ActionsConfig controls the action router's confirmation and labelling
// behaviour. LabelTemplates maps a component name to a label template
// string; Merge combines these maps, but nothing in this module evaluates
// them. action.Router takes per-component labels as functions through
// SetLabelTemplate and otherwise uses action.FormatAction's
// default-by-kind templates.
type ActionsConfig struct {
	AutoSend       bool              `json:"autoSend" yaml:"autoSend"`
	ShowPreview    bool              `json:"showPreview" yaml:"showPreview"`
	LabelTemplates map[string]string `json:"labelTemplates" yaml:"labelTemplates"`
}

// SecurityConfig bounds how much trust the renderer extends to directive
// bodies and which origins a live document may talk back to.
type SecurityConfig struct {
	AllowedOrigins []string `json:"allowedOrigins" yaml:"allowedOrigins"`
	MaxJSONSize    int      `json:"maxJsonSize" yaml:"maxJsonSize"`
}

// Config is the complete host configuration object, per §6 of the
// renderer's wire contract.
type Config struct {
	Theme  string `json:"theme" yaml:"theme"`
	Locale string `json:"locale" yaml:"locale"`
	Debug  bool   `json:"debug" yaml:"debug"`

	// Components is "all" or an explicit allow-list of registered
	// directive type names; the zero value behaves as "all".
	Components []string `json:"components" yaml:"components"`
	LazyLoad   bool     `json:"lazyLoad" yaml:"lazyLoad"`

	Transformer TransformerConfig      `json:"transformer" yaml:"transformer"`
	Markdown    map[string]interface{} `json:"markdown" yaml:"markdown"`
	Renderer    RendererConfig         `json:"renderer" yaml:"renderer"`
	Streaming   StreamingConfig        `json:"streaming" yaml:"streaming"`
	Actions     ActionsConfig          `json:"actions" yaml:"actions"`
	Security    SecurityConfig         `json:"security" yaml:"security"`
}

// Default returns the configuration the renderer assumes in the absence
// of any host override.
func Default() Config {
	return Config{
		Theme:      "default",
		Locale:     "en",
		Components: []string{"all"},
		Transformer: TransformerConfig{
			Mode:                TransformerAuto,
			Detectors:           []string{"all"},
			ConfidenceThreshold: 0.5,
		},
		Renderer: RendererConfig{
			ShadowDOM:   true,
			Sanitize:    true,
			ProseStyles: true,
		},
		Streaming: StreamingConfig{
			Enabled:         true,
			SkeletonDelayMS: 150,
			ShowCursor:      true,
			CursorChar:      "▌",
			AutoScroll:      true,
		},
		Actions: ActionsConfig{
			AutoSend:    false,
			ShowPreview: true,
		},
		Security: SecurityConfig{
			MaxJSONSize: 64 * 1024,
		},
	}
}

// AllComponents reports whether the Components allow-list is the "all"
// sentinel rather than an explicit list.
func (c Config) AllComponents() bool {
	return len(c.Components) == 1 && c.Components[0] == "all"
}

// AllDetectors reports whether Transformer.Detectors is the "all"
// sentinel.
func (c Config) AllDetectors() bool {
	return len(c.Transformer.Detectors) == 1 && c.Transformer.Detectors[0] == "all"
}

// Merge deep-merges override on top of c and returns the result,
// leaving both inputs untouched. A zero-valued scalar field in override
// does not override c's value; an empty slice/map likewise leaves c's
// value in place — override only ever adds or replaces, it never blanks
// a section the host configuration didn't mention.
func Merge(c, override Config) Config {
	out := c

	if override.Theme != "" {
		out.Theme = override.Theme
	}
	if override.Locale != "" {
		out.Locale = override.Locale
	}
	out.Debug = out.Debug || override.Debug

	if len(override.Components) > 0 {
		out.Components = override.Components
	}
	out.LazyLoad = out.LazyLoad || override.LazyLoad

	out.Transformer = mergeTransformer(out.Transformer, override.Transformer)
	out.Markdown = mergeMap(out.Markdown, override.Markdown)
	out.Renderer = mergeRenderer(out.Renderer, override.Renderer)
	out.Streaming = mergeStreaming(out.Streaming, override.Streaming)
	out.Actions = mergeActions(out.Actions, override.Actions)
	out.Security = mergeSecurity(out.Security, override.Security)

	return out
}

func mergeTransformer(base, o TransformerConfig) TransformerConfig {
	if o.Mode != "" {
		base.Mode = o.Mode
	}
	if len(o.Detectors) > 0 {
		base.Detectors = o.Detectors
	}
	if o.ConfidenceThreshold != 0 {
		base.ConfidenceThreshold = o.ConfidenceThreshold
	}
	return base
}

func mergeRenderer(base, o RendererConfig) RendererConfig {
	return RendererConfig{
		ShadowDOM:   base.ShadowDOM || o.ShadowDOM,
		Sanitize:    base.Sanitize || o.Sanitize,
		ProseStyles: base.ProseStyles || o.ProseStyles,
	}
}

func mergeStreaming(base, o StreamingConfig) StreamingConfig {
	if o.SkeletonDelayMS != 0 {
		base.SkeletonDelayMS = o.SkeletonDelayMS
	}
	if o.CursorChar != "" {
		base.CursorChar = o.CursorChar
	}
	base.Enabled = base.Enabled || o.Enabled
	base.ShowCursor = base.ShowCursor || o.ShowCursor
	base.AutoScroll = base.AutoScroll || o.AutoScroll
	return base
}

func mergeActions(base, o ActionsConfig) ActionsConfig {
	base.AutoSend = base.AutoSend || o.AutoSend
	base.ShowPreview = base.ShowPreview || o.ShowPreview
	if len(o.LabelTemplates) > 0 {
		merged := make(map[string]string, len(base.LabelTemplates)+len(o.LabelTemplates))
		for k, v := range base.LabelTemplates {
			merged[k] = v
		}
		for k, v := range o.LabelTemplates {
			merged[k] = v
		}
		base.LabelTemplates = merged
	}
	return base
}

func mergeSecurity(base, o SecurityConfig) SecurityConfig {
	if len(o.AllowedOrigins) > 0 {
		base.AllowedOrigins = o.AllowedOrigins
	}
	if o.MaxJSONSize != 0 {
		base.MaxJSONSize = o.MaxJSONSize
	}
	return base
}

func mergeMap(base, o map[string]interface{}) map[string]interface{} {
	if len(o) == 0 {
		return base
	}
	merged := make(map[string]interface{}, len(base)+len(o))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range o {
		merged[k] = v
	}
	return merged
}

// LoadJSON reads a Config document from path and merges it over Default.
func LoadJSON(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var override Config
	if err := json.Unmarshal(data, &override); err != nil {
		return Config{}, fmt.Errorf("config: parse %s as JSON: %w", path, err)
	}
	return Merge(Default(), override), nil
}

// LoadYAML reads a Config document from path and merges it over Default.
func LoadYAML(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Config{}, fmt.Errorf("config: parse %s as YAML: %w", path, err)
	}
	return Merge(Default(), override), nil
}
