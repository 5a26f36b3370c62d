/*
Package cli provides command-line interface utilities for the vulcan
command: output formatters, typed command errors, and signal handling.

Output Formatting:

Commands that print structured results (such as the status snapshot)
support text and JSON output:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, snapshot); err != nil {
	    return err
	}

Signal Handling:

Long-running commands derive their root context from SetupSignalHandler,
which cancels it on SIGINT or SIGTERM:

	ctx := cli.SetupSignalHandler()
	<-ctx.Done()
*/
package cli
