// Package deps checks that the external tools audiolift shells out to are
// resolvable before a run starts, so missing binaries surface as one clear
// message instead of a mid-batch spawn failure.
package deps
