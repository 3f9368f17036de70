package main

import (
	"github.com/kylelaker/updatechecker/internal/command"
	"github.com/kylelaker/updatechecker/internal/command/check"
	"github.com/kylelaker/updatechecker/internal/command/list"
	"github.com/kylelaker/updatechecker/internal/command/schema"

	_ "github.com/kylelaker/updatechecker/pkg/checker/all"
)

var version = "dev"

func main() {
	command.Main(
		"updatechecker",
		version,
		"Find the latest version, download url and hash of vendor releases",
		check.Check(),
		list.List(),
		schema.Schema(),
	)
}
