package config

import (
	"fmt"
	"sort"
)

// Preset names selectable via --preset or the init command.
const (
	PresetDefault           = "default"
	PresetMediumQualityFast = "medium_quality_faster_train"
	PresetBestQuality       = "best_quality"
	PresetEfficientFinetune = "efficient_finetune"
)

// presets maps preset names to override functions applied on top of the
// stock defaults.
var presets = map[string]func(*OptimizationConfig){
	PresetDefault: func(_ *OptimizationConfig) {},

	// Shorter runs with a hotter learning rate and no soup search.
	PresetMediumQualityFast: func(c *OptimizationConfig) {
		c.LearningRate = 4e-4
		c.MaxEpochs = 5
		c.Patience = 5
		c.TopK = 1
		c.TopKAverageMethod = AverageBest
	},

	// Longer runs, wider soup.
	PresetBestQuality: func(c *OptimizationConfig) {
		c.MaxEpochs = 20
		c.Patience = 20
		c.TopK = 5
		c.TopKAverageMethod = AverageGreedySoup
	},

	// Bias-only fine-tuning with a hotter learning rate to compensate
	// for the reduced trainable parameter count.
	PresetEfficientFinetune: func(c *OptimizationConfig) {
		mode := FinetuneBitFit
		c.EfficientFinetune = &mode
		c.LearningRate = 1e-3
		c.LRChoice = LRChoiceTwoStages
	},
}

// Presets returns the known preset names, sorted.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromPreset returns the config for a named preset.
func FromPreset(name string) (OptimizationConfig, error) {
	apply, ok := presets[name]
	if !ok {
		return OptimizationConfig{}, fmt.Errorf("unknown preset %q (available: %v)", name, Presets())
	}
	cfg := DefaultConfig()
	apply(&cfg)
	return cfg, nil
}
