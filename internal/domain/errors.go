package domain

import "errors"

// Kind classifies a failure at the trust boundary. The HTTP layer maps each
// kind to a fixed envelope code; the wrapped cause is for logs only.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindExternal
	KindInternal
)

type Error struct {
	Kind Kind
	Msg  string // 固定文案，允许返回给调用方
	Err  error  // 诊断明细，只进日志
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "error"
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) error       { return &Error{Kind: KindValidation, Msg: msg} }
func Authentication(msg string) error   { return &Error{Kind: KindAuthentication, Msg: msg} }
func Authorization(msg string) error    { return &Error{Kind: KindAuthorization, Msg: msg} }
func NotFound(msg string) error         { return &Error{Kind: KindNotFound, Msg: msg} }
func External(msg string, err error) error {
	return &Error{Kind: KindExternal, Msg: msg, Err: err}
}
func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf returns the kind of err, or KindInternal for anything untagged.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

func IsKind(err error, k Kind) bool { return err != nil && KindOf(err) == k }
