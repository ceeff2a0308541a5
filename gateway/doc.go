// Package gateway implements the capability-aware dispatch gateway: a fixed
// catalogue of verification tools exposed over MCP, routed to whichever
// verification backends could be acquired at startup, with every backend
// outcome normalized into one result shape and optionally attested with an
// Ed25519 signature.
package gateway
