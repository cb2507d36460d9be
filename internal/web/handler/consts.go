package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the home page path.
	RootPath = "/"

	// ErrNilFatalLogMsg is logged when a handler is initialized without its dependencies.
	ErrNilFatalLogMsg = "app or a handler dependency is nil"
)
