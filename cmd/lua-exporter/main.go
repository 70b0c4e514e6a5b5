// Package main provides the CLI entrypoint for lua-exporter.
//
// lua-exporter loads a YAML project of typed tables and writes one Lua file
// per table plus one per index export rule:
//
//	lua-exporter --project project.yaml --out lua/
package main

import (
	"log"
	"os"
)

func main() {
	log.SetFlags(0)

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
