// Package handler turns typed functions into http.HandlerFunc.
//
// A HandlerFunc receives a Context and a request struct filled by binders
// from pkg/binder, and returns a Response:
//
//	type LoginRequest struct {
//		Username string `form:"username"`
//		Password string `form:"password"`
//	}
//
//	func login(ctx handler.Context, req LoginRequest) handler.Response {
//		...
//		return handler.Redirect("/")
//	}
//
//	r.Post("/login", handler.Wrap(login,
//		handler.WithBinders[handler.Context, LoginRequest](binder.Form()),
//		handler.WithErrorHandler[handler.Context, LoginRequest](errorHandler),
//	))
//
// Responses adapt to DataStar requests: Templ and TemplPartial send element
// patches over SSE, Redirect becomes a client-side redirect, and status
// codes are only written for regular requests.
//
// Errors returned while binding or rendering go to the ErrorHandler.
// HTTPError carries a status code, ValidationError carries per-field
// messages and maps to 422.
package handler
