// Package glitch detects discontinuities in integer sample streams.
//
// A discontinuity is a pair of consecutive samples whose difference exceeds
// a fixed threshold. Because a fast-moving input legitimately produces large
// steps, [Verify] also reports whether the reference input itself stayed
// within the threshold; only then does a clean result mean anything.
package glitch
