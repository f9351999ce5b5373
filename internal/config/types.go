// Package config provides shared configuration types for optconf.
// This package is decoupled from CLI concerns and can be used by any
// tool that needs to load an optimization configuration.
package config

// Optimizer identifiers accepted by optim_type.
const (
	OptimAdamW = "adamw"
	OptimAdam  = "adam"
	OptimSGD   = "sgd"
)

// Learning-rate strategy identifiers accepted by lr_choice.
const (
	LRChoiceLayerwiseDecay = "layerwise_decay"
	LRChoiceTwoStages      = "two_stages"
)

// Schedule identifiers accepted by lr_schedule.
const (
	ScheduleCosineDecay        = "cosine_decay"
	SchedulePolynomialDecay    = "polynomial_decay"
	ScheduleLinearDecay        = "linear_decay"
	ScheduleConstantWithWarmup = "constant_with_warmup"
)

// Checkpoint-averaging strategies accepted by top_k_average_method.
const (
	AverageUniformSoup = "uniform_soup"
	AverageGreedySoup  = "greedy_soup"
	AverageBest        = "best"
)

// Parameter-efficient fine-tuning modes accepted by efficient_finetune.
// A nil EfficientFinetune means full fine-tuning.
const (
	FinetuneBitFit  = "bit_fit"
	FinetuneNormFit = "norm_fit"
)

// Unbounded is the sentinel for max_epochs / max_steps meaning "no limit
// on this axis". At most one of the two may be unbounded.
const Unbounded = -1

// OptimizationConfig holds the optimizer hyperparameters consumed by the
// training pipeline. Field names follow the YAML schema keys.
type OptimizationConfig struct {
	OptimType    string  `koanf:"optim_type" yaml:"optim_type"`
	LearningRate float64 `koanf:"learning_rate" yaml:"learning_rate"`
	WeightDecay  float64 `koanf:"weight_decay" yaml:"weight_decay"`

	// Learning-rate strategy across layers and its decay factor.
	LRChoice string  `koanf:"lr_choice" yaml:"lr_choice"`
	LRDecay  float64 `koanf:"lr_decay" yaml:"lr_decay"`

	// Schedule over training steps.
	LRSchedule string `koanf:"lr_schedule" yaml:"lr_schedule"`

	// Training length bounds. Unbounded (-1) disables the axis.
	MaxEpochs int `koanf:"max_epochs" yaml:"max_epochs"`
	MaxSteps  int `koanf:"max_steps" yaml:"max_steps"`

	// WarmupSteps is a fraction of total steps when < 1, otherwise an
	// absolute step count.
	WarmupSteps float64 `koanf:"warmup_steps" yaml:"warmup_steps"`
	EndLR       float64 `koanf:"end_lr" yaml:"end_lr"`

	// LRMult is applied to the downstream head's learning rate.
	LRMult float64 `koanf:"lr_mult" yaml:"lr_mult"`

	// Early stopping and validation cadence. ValCheckInterval is a
	// fraction of an epoch when <= 1, otherwise an absolute batch count.
	Patience         int     `koanf:"patience" yaml:"patience"`
	ValCheckInterval float64 `koanf:"val_check_interval" yaml:"val_check_interval"`

	// Checkpoint averaging.
	TopK              int    `koanf:"top_k" yaml:"top_k"`
	TopKAverageMethod string `koanf:"top_k_average_method" yaml:"top_k_average_method"`

	// EfficientFinetune selects a parameter-efficient fine-tuning mode.
	// nil means full fine-tuning.
	EfficientFinetune *string `koanf:"efficient_finetune" yaml:"efficient_finetune"`
}

// LintConfig holds validation rule configuration.
type LintConfig struct {
	// Disabled contains rule IDs to disable
	Disabled []string `koanf:"disabled" yaml:"disabled,omitempty"`

	// Severity maps rule ID to severity override (error, warning, info, hint)
	Severity map[string]string `koanf:"severity" yaml:"severity,omitempty"`
}

// File is the top-level shape of an optimization.yaml: the hyperparameter
// keys at the root plus an optional lint block.
type File struct {
	OptimizationConfig `koanf:",squash" yaml:",inline"`

	Lint *LintConfig `koanf:"lint" yaml:"lint,omitempty"`
}

// Optimizers returns the known optimizer identifiers.
func Optimizers() []string {
	return []string{OptimAdamW, OptimAdam, OptimSGD}
}

// LRChoices returns the known lr_choice identifiers.
func LRChoices() []string {
	return []string{LRChoiceLayerwiseDecay, LRChoiceTwoStages}
}

// Schedules returns the known lr_schedule identifiers.
func Schedules() []string {
	return []string{ScheduleCosineDecay, SchedulePolynomialDecay, ScheduleLinearDecay, ScheduleConstantWithWarmup}
}

// AverageMethods returns the known top_k_average_method identifiers.
func AverageMethods() []string {
	return []string{AverageUniformSoup, AverageGreedySoup, AverageBest}
}

// FinetuneModes returns the known efficient_finetune identifiers
// (excluding null).
func FinetuneModes() []string {
	return []string{FinetuneBitFit, FinetuneNormFit}
}
