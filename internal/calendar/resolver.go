package calendar

// Resolver resolves a label key to display text. Implementations fall back
// to a default language and finally to the key itself, so Resolve never
// fails.
type Resolver interface {
	Resolve(key string) string
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(key string) string

// Resolve calls f(key).
func (f ResolverFunc) Resolve(key string) string {
	return f(key)
}

// KeyResolver resolves every key to itself. It is used when no string
// table is available.
var KeyResolver Resolver = ResolverFunc(func(key string) string { return key })

func orKeys(r Resolver) Resolver {
	if r == nil {
		return KeyResolver
	}
	return r
}
