// Package logview reads gooselib log files back: it parses lines written by
// pkg/logging into entries, tails and filters them, and follows log0.txt as
// it grows, including across rotations by another process.
package logview
