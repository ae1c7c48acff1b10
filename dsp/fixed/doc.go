// Package fixed provides the fixed-point value types shared by the integer
// streaming processors.
//
// Types:
//   - [Sample]: signed amplitude constrained to a configurable bit width
//   - [Phase]:  unsigned Q16.16 position, increment, or grain phase
//   - [Gain]:   unsigned Q1.15 gain, [UnityGain] is 1.0
//
// Out-of-range results are brought back into a sample width by an
// [Overflow] policy, either [Saturate] or [Wrap].
package fixed
