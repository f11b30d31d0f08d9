// Package errors provides structured, actionable error messages for the
// apiroutes command.
//
// Every failure the command reports carries a code that maps to a registered
// template:
//   - E101-E109: scanning and output failures
//   - W103: empty scan result (a warning, the run still succeeds)
//   - E120-E129: configuration problems
//
// # Usage
//
//	err := errors.New("E101").
//	    WithDetail("Could not list src/app/api").
//	    WithSuggestion("Pass the API directory with --dir").
//	    Wrap(cause)
//
//	errors.PrintError(err)
//	// Output:
//	// ERROR E101: API directory unreadable
//	//
//	//   Could not list src/app/api
//	//
//	//   Hint: Pass the API directory with --dir
//	//
//	//   Cause: open src/app/api: no such file or directory
package errors
