package main

// Query command
func queryCommand(p *Pool, opts PairOptions, ui UI) error {
	h, err := newQueryHandler(p, opts, ui)
	if err != nil {
		return err
	}

	// now present the REPL
	return h.Run()
}
