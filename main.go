// The main package for the birdcache executable.
package main

import (
	"github.com/perchpi/birdcache/cmd"
)

func main() {
	cmd.Execute()
}
