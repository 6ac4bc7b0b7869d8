// bio-ccs-inputs prepares and inspects the inputs of a circular consensus
// run: it flattens BAM/FOFN input lists, validates the base features of the
// resolved BAMs, and renders recursion matrix dumps as log-probability
// transcripts.
package main

import "github.com/grailbio/ccs/cmd/bio-ccs-inputs/cmd"

func main() {
	cmd.Run()
}
