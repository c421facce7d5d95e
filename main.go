package main

import "github.com/jsphweid/tranhdex/cmd"

func main() {
	cmd.Execute()
}
