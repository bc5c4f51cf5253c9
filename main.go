package main

import "campus-discover/cmd/server"

func main() {
	server.Init()
	server.Run()
}
