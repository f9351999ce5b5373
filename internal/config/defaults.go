package config

// Default hyperparameter values. These match the stock fine-tuning recipe
// shipped with the training pipeline.
const (
	DefaultOptimType         = OptimAdamW
	DefaultLearningRate      = 1e-4
	DefaultWeightDecay       = 1e-3
	DefaultLRChoice          = LRChoiceLayerwiseDecay
	DefaultLRDecay           = 0.9
	DefaultLRSchedule        = ScheduleCosineDecay
	DefaultMaxEpochs         = 10
	DefaultMaxSteps          = Unbounded
	DefaultWarmupSteps       = 0.1
	DefaultEndLR             = 0.0
	DefaultLRMult            = 1.0
	DefaultPatience          = 10
	DefaultValCheckInterval  = 0.5
	DefaultTopK              = 3
	DefaultTopKAverageMethod = AverageGreedySoup
)

// DefaultConfig returns a config populated with the stock recipe.
// EfficientFinetune defaults to nil (full fine-tuning).
func DefaultConfig() OptimizationConfig {
	return OptimizationConfig{
		OptimType:         DefaultOptimType,
		LearningRate:      DefaultLearningRate,
		WeightDecay:       DefaultWeightDecay,
		LRChoice:          DefaultLRChoice,
		LRDecay:           DefaultLRDecay,
		LRSchedule:        DefaultLRSchedule,
		MaxEpochs:         DefaultMaxEpochs,
		MaxSteps:          DefaultMaxSteps,
		WarmupSteps:       DefaultWarmupSteps,
		EndLR:             DefaultEndLR,
		LRMult:            DefaultLRMult,
		Patience:          DefaultPatience,
		ValCheckInterval:  DefaultValCheckInterval,
		TopK:              DefaultTopK,
		TopKAverageMethod: DefaultTopKAverageMethod,
	}
}

// DefaultMap returns the defaults as a flat key map suitable for the
// confmap provider. Keys match the YAML schema.
func DefaultMap() map[string]interface{} {
	return map[string]interface{}{
		"optim_type":           DefaultOptimType,
		"learning_rate":        DefaultLearningRate,
		"weight_decay":         DefaultWeightDecay,
		"lr_choice":            DefaultLRChoice,
		"lr_decay":             DefaultLRDecay,
		"lr_schedule":          DefaultLRSchedule,
		"max_epochs":           DefaultMaxEpochs,
		"max_steps":            DefaultMaxSteps,
		"warmup_steps":         DefaultWarmupSteps,
		"end_lr":               DefaultEndLR,
		"lr_mult":              DefaultLRMult,
		"patience":             DefaultPatience,
		"val_check_interval":   DefaultValCheckInterval,
		"top_k":                DefaultTopK,
		"top_k_average_method": DefaultTopKAverageMethod,
		"efficient_finetune":   nil,
	}
}
