// Package ranges provides value-range rules for optimization configs.
//
// Rules in this package:
//   - RG01: learning_rate must be positive
//   - RG02: weight_decay must be non-negative
//   - RG03: lr_decay must be in (0, 1]
//   - RG04: warmup_steps must be non-negative
//   - RG05: top_k must be at least 1
//   - RG06: patience must be non-negative
//   - RG07: lr_mult must be positive
//   - RG08: val_check_interval must be positive
package ranges
