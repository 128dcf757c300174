// Command lucky serves the Lucky API and carries the admin commands that
// manage its restaurant store. main only wires cobra; each subcommand lives
// in its own file.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
