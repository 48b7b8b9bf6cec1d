package main

import "github.com/saadjs/fitlog/cmd/fitlog"

func main() {
	fitlog.Execute()
}
