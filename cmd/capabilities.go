package cmd

import "fmt"

// CapabilitiesCmd prints every probed backend group and whether it was
// acquired at startup.
type CapabilitiesCmd struct{}

func (c *CapabilitiesCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}

	table := svc.Capabilities()
	for _, id := range table.IDs() {
		status := "unavailable"
		if table.Available(id) {
			status = "available"
		}
		fmt.Printf("%s\t%s\n", id, status)
	}
	return nil
}
