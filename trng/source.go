package trng

// Source yields hardware random words on demand. PollWord is
// non-blocking: it returns ok=false when nothing is ready and the
// caller simply tries again on a later pass. Implementations must
// complete in bounded time.
type Source interface {
	PollWord() (word uint32, ok bool)
}
