package commands

import (
	"context"

	"github.com/soupstack-labs/optconf/internal/cli/output"
	"github.com/soupstack-labs/optconf/internal/config"
	"github.com/spf13/cobra"
)

// configKey is used to store the loaded config in context.
type configKey struct{}

// rendererKey is used to store the renderer in context.
type rendererKey struct{}

// WithConfig stores a loaded config result in the context.
func WithConfig(ctx context.Context, res *config.Result) context.Context {
	return context.WithValue(ctx, configKey{}, res)
}

// WithRenderer stores a renderer in the context.
func WithRenderer(ctx context.Context, r *output.Renderer) context.Context {
	return context.WithValue(ctx, rendererKey{}, r)
}

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Res      *config.Result
	Renderer *output.Renderer
}

// NewCommandContext pulls the loaded config and renderer out of the
// command's context, falling back to defaults so commands stay usable
// in tests that execute them directly.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cc := &CommandContext{}

	if res, ok := cmd.Context().Value(configKey{}).(*config.Result); ok {
		cc.Res = res
	} else {
		cc.Res = &config.Result{Config: config.DefaultConfig()}
	}

	if r, ok := cmd.Context().Value(rendererKey{}).(*output.Renderer); ok {
		cc.Renderer = r
	} else {
		cc.Renderer = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeAuto)
	}

	return cc
}
