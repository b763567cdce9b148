// Package domain defines the MCP tool surface for inventory data.
//
// Each tool is declared as a schema constructor plus a handler factory bound
// to a storage contract. Handlers validate input, query storage, and shape
// the result records agents consume.
package domain
