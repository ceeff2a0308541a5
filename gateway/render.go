package gateway

import (
	"fmt"
	"strings"
)

// Render formats a response as the text returned to tool callers: a status
// line, the message, any present diagnostic collections and an appended
// attestation block when a token was produced.
func Render(resp Response) string {
	var b strings.Builder
	status := "FAILED"
	if resp.Result.Verified {
		status = "VERIFIED"
	}
	fmt.Fprintf(&b, "%s: %s", status, resp.Result.Message)
	renderList(&b, "Issues", resp.Result.Issues)
	renderList(&b, "Conflicts", resp.Result.Conflicts)
	renderList(&b, "Violations", resp.Result.Violations)
	if resp.Result.NormalizedForm != "" {
		fmt.Fprintf(&b, "\nNormalized: %s", resp.Result.NormalizedForm)
	}
	if resp.Attestation != "" {
		fmt.Fprintf(&b, "\n\nAttestation: %s", resp.Attestation)
	} else if resp.SigningNote != "" {
		fmt.Fprintf(&b, "\n\nAttestation: %s", resp.SigningNote)
	}
	return b.String()
}

func renderList(b *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:", label)
	for _, item := range items {
		fmt.Fprintf(b, "\n- %s", item)
	}
}
