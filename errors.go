package sqldemo

// QueryError reports a statement the engine rejected or failed to run.
//
// Error returns the engine message unchanged so callers can surface it
// verbatim; Query holds the statement text exactly as it was executed.
//
// Example:
//
//	var qerr *sqldemo.QueryError
//	if errors.As(err, &qerr) {
//	    log.Printf("%s failed: %v", qerr.Query, qerr.Err)
//	}
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string { return e.Err.Error() }

func (e *QueryError) Unwrap() error { return e.Err }
