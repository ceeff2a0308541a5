package gateway

import (
	"reflect"

	"github.com/viant/x"
)

// typeRegistry holds the Go types behind each tool's argument schema so that
// callers embedding the gateway can resolve argument shapes by type name.
var typeRegistry = x.NewRegistry()

// Types returns the registry of tool argument types.
func Types() *x.Registry {
	return typeRegistry
}

func registerArgType(t reflect.Type, options ...x.Option) {
	typeRegistry.Register(x.NewType(t, options...))
}
