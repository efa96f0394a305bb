package main

import "github.com/goplus/gfxmatrix/cmd/gfxmatrix/internal"

func main() {
	internal.Execute()
}
