package main

import (
	"errors"
	"fmt"
	"os"
)

// main runs the cobra root and owns the teardown of whatever the command opened.
func main() {
	opts := &rootOptions{}
	if err := run(opts, os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

func run(opts *rootOptions, args []string) error {
	root := newRootCmd(opts)
	root.SetArgs(args)
	err := root.Execute()

	var reported reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	if cerr := opts.app.Close(); cerr != nil {
		fmt.Fprintln(root.ErrOrStderr(), cerr)
		err = errors.Join(err, cerr)
	}
	return err
}
