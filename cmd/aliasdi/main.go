// Command aliasdi validates and inspects alias container configurations.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "aliasdi:", err)
		os.Exit(1)
	}
}
