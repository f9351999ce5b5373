// Package finetune turns an optimization config into per-parameter
// training policy: which parameters train, at what learning rate, and
// with what weight decay.
package finetune

import (
	"fmt"
	"strings"

	"github.com/soupstack-labs/optconf/internal/config"
)

// Parameter is one named tensor of the model being fine-tuned.
// Layer is the zero-based depth from the input; the head sits above the
// deepest layer.
type Parameter struct {
	Name  string
	Layer int
	Head  bool
}

// Group is a set of parameter names sharing a learning rate and weight
// decay, the shape optimizers consume.
type Group struct {
	LR          float64
	WeightDecay float64
	Params      []string
}

// Groups builds optimizer parameter groups for the model's parameters.
// Frozen parameters (excluded by efficient_finetune) are omitted.
func Groups(cfg *config.OptimizationConfig, params []Parameter) ([]Group, error) {
	numLayers := 0
	for _, p := range params {
		if !p.Head && p.Layer+1 > numLayers {
			numLayers = p.Layer + 1
		}
	}

	// key groups by (lr, decay) so identical policies merge.
	type key struct {
		lr    float64
		decay float64
	}
	grouped := map[key][]string{}
	var order []key

	for _, p := range params {
		if !Trainable(cfg.EfficientFinetune, p.Name) {
			continue
		}

		lr, err := paramLR(cfg, p, numLayers)
		if err != nil {
			return nil, err
		}

		decay := cfg.WeightDecay
		if noDecay(p.Name) {
			decay = 0
		}

		k := key{lr: lr, decay: decay}
		if _, ok := grouped[k]; !ok {
			order = append(order, k)
		}
		grouped[k] = append(grouped[k], p.Name)
	}

	groups := make([]Group, 0, len(order))
	for _, k := range order {
		groups = append(groups, Group{LR: k.lr, WeightDecay: k.decay, Params: grouped[k]})
	}
	return groups, nil
}

// paramLR computes the learning rate for one parameter under lr_choice.
func paramLR(cfg *config.OptimizationConfig, p Parameter, numLayers int) (float64, error) {
	if p.Head {
		return cfg.LearningRate * cfg.LRMult, nil
	}

	switch cfg.LRChoice {
	case config.LRChoiceLayerwiseDecay:
		// Deepest backbone layer trains at the base rate; each layer
		// below decays by another factor of lr_decay.
		depth := numLayers - 1 - p.Layer
		lr := cfg.LearningRate
		for i := 0; i < depth; i++ {
			lr *= cfg.LRDecay
		}
		return lr, nil
	case config.LRChoiceTwoStages:
		return cfg.LearningRate, nil
	default:
		return 0, fmt.Errorf("unknown lr_choice %q", cfg.LRChoice)
	}
}

// Trainable reports whether a parameter trains under the given
// efficient_finetune mode. nil mode trains everything.
func Trainable(mode *string, name string) bool {
	if mode == nil {
		return true
	}
	switch *mode {
	case config.FinetuneBitFit:
		return isBias(name)
	case config.FinetuneNormFit:
		return isBias(name) || isNorm(name)
	default:
		return true
	}
}

func isBias(name string) bool {
	return strings.HasSuffix(name, ".bias")
}

// isNorm matches normalization-layer parameters by the naming
// conventions of common backbones (layernorm, ln_1, norm1, bn, ...).
func isNorm(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range []string{"layernorm", "layer_norm", "batchnorm", "groupnorm", ".ln", "ln_", "norm"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// noDecay reports whether weight decay is disabled for a parameter.
// Biases and normalization weights are conventionally exempt.
func noDecay(name string) bool {
	return isBias(name) || isNorm(name)
}
