package main

import "tree-reconciler/cmd"

func main() {
	cmd.Execute()
}
