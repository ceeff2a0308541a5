package cmd

// Options is the root for the CLI.  Struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	Config string `short:"f" long:"config" description:"gateway configuration YAML path"`

	Serve        *ServeCmd        `command:"serve"        description:"Start MCP server exposing the verification tools"`
	ListTools    *ListToolsCmd    `command:"list-tools"   description:"List all registered verification tools"`
	Tool         *ToolCmd         `command:"tool"         description:"Show detailed info about one verification tool"`
	Exec         *ExecCmd         `command:"exec"         description:"Invoke a verification tool locally"`
	Capabilities *CapabilitiesCmd `command:"capabilities" description:"Show which verification backends are available"`
}

// Init instantiates the sub-command referenced by the first positional argument
// so that go-flags can populate its fields.
func (o *Options) Init(firstArg string) {
	switch firstArg {
	case "serve":
		o.Serve = &ServeCmd{}
	case "list-tools":
		o.ListTools = &ListToolsCmd{}
	case "tool":
		o.Tool = &ToolCmd{}
	case "exec":
		o.Exec = &ExecCmd{}
	case "capabilities":
		o.Capabilities = &CapabilitiesCmd{}
	}
}
