package config

import (
	"fmt"
)

// indicates that a required option was not given
type MissingOptionError struct {
	Option, Description string
}

func (e MissingOptionError) Error() string {
	return fmt.Sprintf("You must provide %s with %s", e.Description, e.Option)
}

// indicates that an option was given an unacceptable value
type InvalidOptionError struct {
	Option, Message string
}

func (e InvalidOptionError) Error() string {
	return fmt.Sprintf("Invalid value for %s: %s", e.Option, e.Message)
}

// indicates that a file named by an option could not be read
type FileError struct {
	Option, Path string
	Err          error
}

func (e FileError) Error() string {
	return fmt.Sprintf("Couldn't read '%s' (given with %s): %s", e.Path, e.Option, e.Err.Error())
}

func (e FileError) Unwrap() error {
	return e.Err
}
