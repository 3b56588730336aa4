// Package chain holds the sample sequences produced by the mixmc engines and
// the summary computed from them.
//
// A Chain is built once by an engine through a Builder and is immutable
// afterwards. Besides the samples it carries the engine name, the seed and
// per-block acceptance counts.
//
// Fingerprint hashes the bit patterns of every sample with xxHash64, which
// makes replay checks cheap: two runs with the same seed, configuration and
// dataset must produce the same fingerprint.
//
// Summarize reduces a chain to its per-parameter mean and 5th/95th
// percentiles:
//
//	sum, err := chain.Summarize(c)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(sum)
//	// s: 0.412 [0.201, 0.733]
//	// tau: 0.508 [0.061, 0.951]
//	// ...
package chain
