package main

import "github.com/ethpandaops/exit-finalizer/cmd"

func main() {
	cmd.Execute()
}
