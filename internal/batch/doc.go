// Package batch drives a whole extraction run: scan the folder, then for
// each file probe, select, and extract, strictly in sequence. The run halts
// at the first failing file unless skip-and-continue was requested, and a
// folder-level flock keeps two runs from racing on the same outputs.
package batch
