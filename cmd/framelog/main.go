package main

import "github.com/dbsmedya/framelog/cmd/framelog/cmd"

func main() {
	cmd.Execute()
}
