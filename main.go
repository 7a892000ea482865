package main

import "github.com/payvek/payvek-go/cmd"

// set by LDFLAGS at compile time
var (
	gitCommit  string
	gitVersion string
)

func main() {
	cmd.Version = gitVersion
	cmd.Commit = gitCommit

	cmd.Execute()
}
