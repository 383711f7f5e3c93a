package main

import "github.com/jbrokmeier/tagungsplan/cmd/tagungsplan/cmd"

func main() {
	cmd.Execute()
}
