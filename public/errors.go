package public

import "errors"

var (
	ErrWrongType            = errors.New("the value stored at the key is the wrong type for this operation")
	ErrCannotParseAsInteger = errors.New("the string value could not be parsed as an integer")
	ErrOutOfRange           = errors.New("the value is out of the range of a 64-bit integer")
	ErrNothingValue         = errors.New("nothing can not be stored as a value")
	ErrUnknownCommand       = errors.New("the command is not supported by this backend")
	ErrBackendClosed        = errors.New("the backend is closed")
	ErrMutexUnlocked        = errors.New("unlock of an unlocked mutex")
)
