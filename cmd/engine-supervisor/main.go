// Command engine-supervisor runs the vehicle/engine supervisory layer.
package main

import "github.com/oshokin/engine-supervisor/cmd/engine-supervisor/cmd"

func main() {
	cmd.Execute()
}
