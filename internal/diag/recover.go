package diag

// Fail aborts the current generation step. The IR uses it for invariant
// violations; Recover turns it back into an error at a pass boundary.
func Fail(code Code, format string, args ...any) {
	panic(Internalf(code, format, args...))
}

// Recover converts a panic raised with a *Error (or any value implementing
// error that wraps one) into *errp. Other panics are re-raised untouched.
//
//	func step() (err error) {
//		defer diag.Recover(&err)
//		...
//	}
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if de, ok := r.(*Error); ok {
		*errp = de
		return
	}
	if err, ok := r.(error); ok && KindOf(err) != 0 {
		*errp = err
		return
	}
	panic(r)
}
