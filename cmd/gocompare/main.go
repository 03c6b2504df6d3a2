package main

import (
	"github.com/dbsmedya/gocompare/cmd/gocompare/cmd"
)

func main() {
	cmd.Execute()
}
