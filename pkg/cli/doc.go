/*
Package cli provides command-line utilities shared by the edgeboot
command: typed error categories and the mapping from error category to
process exit code.

Exit Codes:

Every fatal condition on the bootstrap path exits with a code that tells
an external process manager what class of failure occurred, so it can
distinguish retryable from non-retryable failures:

	1  generic failure
	2  configuration error (missing route variable, bad locator, bad settings)
	3  template render error (unresolved placeholder)
	4  validation failure (rendered config structurally invalid)
	5  discovery failure (no candidate config path exists)

Exit code 0 is unreachable on the run path by construction: a successful
bootstrap replaces the process image with the primary listener, so the
bootstrap itself never returns.

Error types carry their category through an ExitCode() int method;
ExitCode walks a wrapped error chain and returns the category,
defaulting to 1:

	if err := runGateway(cmd, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
*/
package cli
