//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/bojiang/typing-utils/suite"
)

func main() {
	js.Global().Set("NormalizeAndShow", js.FuncOf(suite.NormalizeAndShow))
	js.Global().Set("IsSubtypeAndShow", js.FuncOf(suite.IsSubtypeAndShow))
	js.Global().Set("RunAndShow", js.FuncOf(suite.RunAndShow))

	// wait indefinitely so that Go does not terminate execution
	// and the function remains available
	<-make(chan struct{})
}
