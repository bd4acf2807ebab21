package main

import "github.com/corelint/corelint/cmd/corelint"

func main() { corelint.Execute() }
