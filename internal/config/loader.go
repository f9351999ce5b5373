package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ConfigFileName is the default name of the config file.
const ConfigFileName = "optimization.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "optimization.yml"

// EnvPrefix is the prefix for environment variable overrides,
// e.g. OPTCONF_LEARNING_RATE -> learning_rate.
const EnvPrefix = "OPTCONF_"

// Result holds a loaded configuration together with where it came from.
type Result struct {
	Config OptimizationConfig
	Lint   *LintConfig

	// FileUsed is the config file that was loaded, or "" when running
	// on defaults only.
	FileUsed string

	// Preset is the preset the load started from, or "" for stock defaults.
	Preset string
}

// findConfigFile finds the config file to use.
// Priority: explicit path > optimization.yaml > optimization.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(ConfigFileName); err == nil {
		return ConfigFileName
	}
	if _, err := os.Stat(ConfigFileNameAlt); err == nil {
		return ConfigFileNameAlt
	}
	return ""
}

// Load loads configuration from defaults, an optional preset, a config
// file, environment variables, and CLI flags.
// Precedence (highest to lowest): flags > env vars > config file > preset > defaults
func Load(cfgFile, preset string, flags *pflag.FlagSet) (*Result, error) {
	k := koanf.New(".")

	// 1. Defaults, optionally rebased on a preset.
	base := DefaultMap()
	if preset != "" && preset != PresetDefault {
		cfg, err := FromPreset(preset)
		if err != nil {
			return nil, err
		}
		base = toMap(cfg)
	}
	if err := k.Load(confmap.Provider(base, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file.
	fileUsed := findConfigFile(cfgFile)
	if fileUsed != "" {
		if err := k.Load(file.Provider(fileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", fileUsed, err)
		}
	} else if cfgFile != "" {
		return nil, fmt.Errorf("config file not found: %s", cfgFile)
	}

	// 3. Environment variables (OPTCONF_ prefix).
	// Transform: OPTCONF_LEARNING_RATE -> learning_rate
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority - overrides env vars and config file).
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			// Transform kebab-case to snake_case for config keys
			key := strings.ReplaceAll(f.Name, "-", "_")
			if !isConfigKey(key) {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal root keys and the optional lint block.
	res := &Result{FileUsed: fileUsed, Preset: preset}
	if err := k.Unmarshal("", &res.Config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if k.Exists("lint") {
		var lint LintConfig
		if err := k.Unmarshal("lint", &lint); err != nil {
			return nil, fmt.Errorf("unable to decode lint config: %w", err)
		}
		res.Lint = &lint
	}

	return res, nil
}

// LoadFile loads a single YAML file without env or flag layering.
// Used by the validate command, which checks files as written.
func LoadFile(path string) (*Result, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	res := &Result{FileUsed: path, Config: DefaultConfig()}
	if err := k.Unmarshal("", &res.Config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if k.Exists("lint") {
		var lint LintConfig
		if err := k.Unmarshal("lint", &lint); err != nil {
			return nil, fmt.Errorf("unable to decode lint config: %w", err)
		}
		res.Lint = &lint
	}
	return res, nil
}

// configKeys are the schema keys that flags may override.
var configKeys = map[string]bool{
	"optim_type":           true,
	"learning_rate":        true,
	"weight_decay":         true,
	"lr_choice":            true,
	"lr_decay":             true,
	"lr_schedule":          true,
	"max_epochs":           true,
	"max_steps":            true,
	"warmup_steps":         true,
	"end_lr":               true,
	"lr_mult":              true,
	"patience":             true,
	"val_check_interval":   true,
	"top_k":                true,
	"top_k_average_method": true,
	"efficient_finetune":   true,
}

func isConfigKey(key string) bool {
	return configKeys[key]
}

// toMap flattens a config into confmap form.
func toMap(c OptimizationConfig) map[string]interface{} {
	m := map[string]interface{}{
		"optim_type":           c.OptimType,
		"learning_rate":        c.LearningRate,
		"weight_decay":         c.WeightDecay,
		"lr_choice":            c.LRChoice,
		"lr_decay":             c.LRDecay,
		"lr_schedule":          c.LRSchedule,
		"max_epochs":           c.MaxEpochs,
		"max_steps":            c.MaxSteps,
		"warmup_steps":         c.WarmupSteps,
		"end_lr":               c.EndLR,
		"lr_mult":              c.LRMult,
		"patience":             c.Patience,
		"val_check_interval":   c.ValCheckInterval,
		"top_k":                c.TopK,
		"top_k_average_method": c.TopKAverageMethod,
		"efficient_finetune":   nil,
	}
	if c.EfficientFinetune != nil {
		m["efficient_finetune"] = *c.EfficientFinetune
	}
	return m
}
