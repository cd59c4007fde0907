// Command slicegen generates validated slice type behaviour from
// *.slices.yaml spec files.
//
// Typical use is a go:generate directive next to the spec file:
//
//	//go:generate go run slicegen/cmd/slicegen gen ascii.slices.yaml
package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}
