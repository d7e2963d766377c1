package publish

// skipError marks an intentional stage skip. Defined locally because the
// pipe package registers this one.
type skipError string

func (e skipError) Error() string { return string(e) }
func (e skipError) IsSkip() bool  { return true }
