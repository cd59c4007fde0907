package contract

import "errors"

type Name string

type Token []byte

type Alias = string

type Count int

type Box[T any] string

type NameError struct {
	Input string
}

func (e *NameError) Error() string {
	return "invalid name " + e.Input
}

func (n Name) String() string {
	return string(n)
}

func (n *Name) Reset() {
	*n = ""
}

func validateName(s string) *NameError {
	if s == "" {
		return &NameError{Input: s}
	}

	return nil
}

func validateToken(b []byte) error {
	if len(b) == 0 {
		return errors.New("empty token")
	}

	return nil
}

func wrongArgs(n int) error {
	return nil
}

func notError(s string) bool {
	return s != ""
}

var DefaultName = Name("anon")
