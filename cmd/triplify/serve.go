package main

import (
	"fmt"

	thttp "github.com/fwojciec/triplify/http"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := thttp.NewServer(deps.Pipeline, deps.Fetcher, deps.Writers, thttp.WithLogger(deps.Logger))
	if err := srv.Open(c.Addr); err != nil {
		return fmt.Errorf("listening on %s: %w", c.Addr, err)
	}
	fmt.Fprintf(deps.Stdout, "Listening on %s\n", srv.URL())

	<-deps.Ctx.Done()
	return srv.Close()
}
