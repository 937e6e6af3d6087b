package main

import (
	"flag"

	"intertask/internal/server"
)

func main() {
	confPath := flag.String("config", ".env", "path to the env config file")
	flag.Parse()

	server.InitAndServe(*confPath)
}
