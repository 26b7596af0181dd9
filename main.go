package main

import "github.com/ValentinKolb/rangevec/cmd"

func main() {
	cmd.Execute()
}
