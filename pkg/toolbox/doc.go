// Package toolbox is a flat collection of helpers for fast prototyping,
// rudimentary fuzz testing and random test-data generation.
//
// Every function is independent. The only state shared between calls is the
// pool of random engines used by the string and digit generators and the
// latch behind LogOnce. All helpers are safe for concurrent use.
package toolbox
