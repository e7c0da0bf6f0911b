package cmd

// Exit codes for the storyspec CLI
const (
	// ExitSuccess indicates the reported run had no failures
	ExitSuccess = 0

	// ExitRunFailure indicates the reported run contains failed scenarios
	ExitRunFailure = 1

	// ExitParseError indicates a results document could not be parsed
	ExitParseError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
