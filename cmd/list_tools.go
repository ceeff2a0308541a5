package cmd

import (
	"fmt"
	"sort"
)

// ListToolsCmd prints every registered verification tool with its
// description.
type ListToolsCmd struct {
	Pattern string `short:"p" long:"pattern" description:"name prefix filter ('*' for all)" default:"*"`
}

func (c *ListToolsCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	matched := map[string]bool{}
	for _, name := range svc.MatchTools(c.Pattern) {
		matched[name] = true
	}

	descriptors := svc.ToolDescriptors()
	// Sorting for deterministic output (helpful for tests & scripting).
	sort.Slice(descriptors, func(i, j int) bool { return descriptors[i].Name < descriptors[j].Name })
	for _, descriptor := range descriptors {
		if !matched[descriptor.Name] {
			continue
		}
		fmt.Printf("%s\t%s\n", descriptor.Name, descriptor.Description)
	}
	return nil
}
