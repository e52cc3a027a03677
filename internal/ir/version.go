package ir

// Version constants for the lowered-program schema and the tool.
const (
	// IRVersion is the lowered-program schema version.
	IRVersion = "1"

	// ToolVersion is the powcanon version.
	ToolVersion = "0.1.0"
)
