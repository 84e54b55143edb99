package main

import "github.com/leakscope/leakscope/cmd/leakscope"

func main() { leakscope.Execute() }
