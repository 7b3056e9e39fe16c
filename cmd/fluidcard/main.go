// Command fluidcard renders, previews and serves the fluid card animation.
package main

import "honnef.co/go/fluidcard/internal/cli"

func main() {
	cli.Execute()
}
