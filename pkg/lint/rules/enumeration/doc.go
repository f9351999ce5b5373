// Package enumeration provides identifier rules for optimization configs.
//
// Rules in this package:
//   - EN01: optim_type must be a known optimizer
//   - EN02: lr_choice must be a known strategy
//   - EN03: lr_schedule must be a known schedule
//   - EN04: top_k_average_method must be a known averaging method
//   - EN05: efficient_finetune must be null or a known mode
package enumeration
