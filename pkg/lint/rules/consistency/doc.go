// Package consistency provides cross-field rules for optimization configs.
//
// Rules in this package:
//   - CS01: end_lr must be non-negative and not exceed learning_rate
//   - CS02: max_epochs and max_steps must bound training on at least one axis
//   - CS03: absolute warmup_steps must fit within max_steps
//   - CS04: top_k above 1 has no effect with the best averaging method
//   - CS05: fractional val_check_interval needs an epoch bound
package consistency
