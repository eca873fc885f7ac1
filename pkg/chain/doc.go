// Package chain provides an ordered chain of source processing steps.
//
// A chain starts from a source set. Every step materialized by the chain gets a lazy input:
// the source set when the step is first, the output of the step right before it otherwise.
// The input is only worked out when the chain is evaluated, so steps can be added, removed
// and moved at any time before that without rewiring anything by hand.
//
// A step removed from the chain keeps its input, but it resolves to an empty file set.
// This is not an error: removing a step after it has been materialized is expected.
//
// The chain does not know how to build or run steps. Steps are built by a model.Factory
// supplied by the host, and the chain only decides which file set each step reads.
package chain
