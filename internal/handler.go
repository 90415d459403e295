package internal

// Handler is a group of routes, typically one per feature of the site.
// Routes is called once while the App is built.
type Handler interface {
	Routes(r Router)
}

// HandlerFunc serves one request. A returned error is passed to the
// ErrorHandler unless the response was already written.
type HandlerFunc func(c Context) error

// Middleware decorates a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler turns a handler error into a response. An error it returns
// is only logged.
type ErrorHandler func(Context, error) error
