package finetune

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soupstack-labs/optconf/internal/config"
)

// backbone is a three-layer backbone plus a head, with norm and bias
// parameters mixed in.
var backbone = []Parameter{
	{Name: "encoder.layer.0.attention.weight", Layer: 0},
	{Name: "encoder.layer.0.attention.bias", Layer: 0},
	{Name: "encoder.layer.1.attention.weight", Layer: 1},
	{Name: "encoder.layer.1.layernorm.weight", Layer: 1},
	{Name: "encoder.layer.2.attention.weight", Layer: 2},
	{Name: "head.classifier.weight", Head: true},
	{Name: "head.classifier.bias", Head: true},
}

func groupOf(t *testing.T, groups []Group, param string) Group {
	t.Helper()
	for _, g := range groups {
		for _, name := range g.Params {
			if name == param {
				return g
			}
		}
	}
	t.Fatalf("parameter %s not in any group", param)
	return Group{}
}

func TestGroups_LayerwiseDecay(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LearningRate = 1e-3
	cfg.LRDecay = 0.5
	cfg.LRMult = 10

	groups, err := Groups(&cfg, backbone)
	require.NoError(t, err)

	// Deepest layer at base rate, shallower layers decayed.
	assert.InDelta(t, 1e-3, groupOf(t, groups, "encoder.layer.2.attention.weight").LR, 1e-12)
	assert.InDelta(t, 5e-4, groupOf(t, groups, "encoder.layer.1.attention.weight").LR, 1e-12)
	assert.InDelta(t, 2.5e-4, groupOf(t, groups, "encoder.layer.0.attention.weight").LR, 1e-12)

	// Head at base * lr_mult.
	assert.InDelta(t, 1e-2, groupOf(t, groups, "head.classifier.weight").LR, 1e-12)
}

func TestGroups_TwoStages(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LRChoice = config.LRChoiceTwoStages
	cfg.LearningRate = 1e-4
	cfg.LRMult = 100

	groups, err := Groups(&cfg, backbone)
	require.NoError(t, err)

	assert.InDelta(t, 1e-4, groupOf(t, groups, "encoder.layer.0.attention.weight").LR, 1e-12)
	assert.InDelta(t, 1e-4, groupOf(t, groups, "encoder.layer.2.attention.weight").LR, 1e-12)
	assert.InDelta(t, 1e-2, groupOf(t, groups, "head.classifier.weight").LR, 1e-12)
}

func TestGroups_NoDecayForBiasAndNorm(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.WeightDecay = 0.01

	groups, err := Groups(&cfg, backbone)
	require.NoError(t, err)

	assert.Equal(t, 0.0, groupOf(t, groups, "encoder.layer.0.attention.bias").WeightDecay)
	assert.Equal(t, 0.0, groupOf(t, groups, "encoder.layer.1.layernorm.weight").WeightDecay)
	assert.Equal(t, 0.01, groupOf(t, groups, "encoder.layer.0.attention.weight").WeightDecay)
}

func TestGroups_UnknownLRChoice(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.LRChoice = "three_stages"

	_, err := Groups(&cfg, backbone)
	require.Error(t, err)
}

func collectParams(groups []Group) map[string]bool {
	params := map[string]bool{}
	for _, g := range groups {
		for _, name := range g.Params {
			params[name] = true
		}
	}
	return params
}

func TestGroups_BitFitFreezesWeights(t *testing.T) {
	cfg := config.DefaultConfig()
	mode := config.FinetuneBitFit
	cfg.EfficientFinetune = &mode

	groups, err := Groups(&cfg, backbone)
	require.NoError(t, err)

	params := collectParams(groups)
	assert.True(t, params["encoder.layer.0.attention.bias"])
	assert.True(t, params["head.classifier.bias"])
	assert.False(t, params["encoder.layer.0.attention.weight"])
	assert.False(t, params["head.classifier.weight"])
}

func TestGroups_NormFitKeepsNorms(t *testing.T) {
	cfg := config.DefaultConfig()
	mode := config.FinetuneNormFit
	cfg.EfficientFinetune = &mode

	groups, err := Groups(&cfg, backbone)
	require.NoError(t, err)

	params := collectParams(groups)
	assert.True(t, params["encoder.layer.0.attention.bias"])
	assert.True(t, params["encoder.layer.1.layernorm.weight"])
	assert.False(t, params["encoder.layer.0.attention.weight"])
}

func TestTrainable(t *testing.T) {
	bitFit := config.FinetuneBitFit
	normFit := config.FinetuneNormFit

	assert.True(t, Trainable(nil, "anything.weight"))
	assert.True(t, Trainable(&bitFit, "layer.bias"))
	assert.False(t, Trainable(&bitFit, "layer.weight"))
	assert.True(t, Trainable(&normFit, "encoder.ln_1.weight"))
	assert.True(t, Trainable(&normFit, "encoder.batchnorm.weight"))
	assert.False(t, Trainable(&normFit, "encoder.attention.weight"))
}
