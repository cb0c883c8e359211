package registry

import "fmt"

// ParseError reports a value that does not conform to the grammar of a
// recognized type.
type ParseError struct {
	Name  string // annotation name, without the sigil
	Tag   string // type tag or constructor identifier
	Token string // offending raw text
	Msg   string
	Err   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	if e.Name == "" {
		return fmt.Sprintf("%s: invalid value %q: %s", e.Tag, e.Token, msg)
	}

	return fmt.Sprintf("@%s (%s): invalid value %q: %s", e.Name, e.Tag, e.Token, msg)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func parseErr(name, tag, token, msg string, err error) *ParseError {
	return &ParseError{Name: name, Tag: tag, Token: token, Msg: msg, Err: err}
}
