package twitter

// callConfig is shared by every Call derived from one Client. It is never
// modified after New returns.
type callConfig struct {
	auth         Auth
	format       Format
	domain       string
	secure       bool
	agent        string
	transport    Transport
	logger       Logger
	interceptors *InterceptorChain
}

// Call is an immutable, partially built API call: the path segments
// accumulated so far plus the client configuration.
type Call struct {
	config   *callConfig
	segments []string
}

// Path returns a new Call with segments appended. The receiver is left unchanged.
func (c *Call) Path(segments ...string) *Call {
	next := make([]string, 0, len(c.segments)+len(segments))
	next = append(next, c.segments...)
	next = append(next, segments...)

	return &Call{config: c.config, segments: next}
}

// Segments returns a copy of the accumulated path segments.
func (c *Call) Segments() []string {
	out := make([]string, len(c.segments))
	copy(out, c.segments)

	return out
}
