package main

import "github.com/cardioinsight/riskservice/api"

func main() {
	api.MainLoop()
}
