package main

import "github.com/cardioinsight/riskservice/cmd/riskctl/command"

func main() {
	command.Execute()
}
