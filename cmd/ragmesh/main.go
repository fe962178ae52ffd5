// Command ragmesh is an interactive retrieval-augmented question answering
// shell. Documents are uploaded with /upload and questions are typed
// directly; answers cite the documents they were grounded on.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
