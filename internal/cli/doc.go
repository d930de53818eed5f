// Package cli implements the command-line interface for wb-liga.
//
// The cli package provides the Cobra-based CLI for browsing the water polo
// league overview, single leagues and games, extracting saved pages offline,
// collecting leagues into the raw fact store and running the normalizer
// batch jobs. Output is text or JSON on stdout; logs go to stderr.
package cli
