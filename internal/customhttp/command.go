package customhttp

import "net/http"

type HTTPCommand interface {
	Do(req *http.Request) (resp *http.Response, err error)
}

type httpCommandFunc func(req *http.Request) (resp *http.Response, err error)

func (h httpCommandFunc) Do(req *http.Request) (resp *http.Response, err error) {
	return h(req)
}

type HTTPCommandBuilder struct {
	client      HTTPCommand
	middlewares []Middleware
}

func New(options ...func(*HTTPCommandBuilder)) *HTTPCommandBuilder {
	builder := &HTTPCommandBuilder{
		client: http.DefaultClient,
	}

	for _, option := range options {
		option(builder)
	}
	return builder
}

func (b *HTTPCommandBuilder) Build() HTTPCommand {
	mw := chainMiddleware(b.middlewares...)
	return mw(b.client.Do)
}

// WithHTTPClient allows the user to supply their own http.Client
func WithHTTPClient(client HTTPCommand) func(*HTTPCommandBuilder) {
	return func(builder *HTTPCommandBuilder) {
		builder.client = client
	}
}

// WithMiddleware appends middlewares; the first one added is the outermost
func WithMiddleware(m ...Middleware) func(*HTTPCommandBuilder) {
	return func(builder *HTTPCommandBuilder) {
		builder.middlewares = append(builder.middlewares, m...)
	}
}
