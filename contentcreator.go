// Package contentcreator holds module-level metadata shared by the CLI
// and the MCP server.
package contentcreator

// Version is the wrapper version reported by the CLI and the MCP server.
const Version = "0.1.0"
