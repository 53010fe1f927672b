package middleware

// ContextKey is the type used for request-context keys set by this
// package.
type ContextKey string
