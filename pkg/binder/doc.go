// Package binder loads HTTP request data through a props.RequestSchema.
//
// Bind gathers values from three places: the query string, the body (JSON,
// url-encoded or multipart form) and chi path parameters. Values that arrive
// as text are converted with the field's text parser, so "42" reaches an Int
// field as an integer. JSON numbers are decoded as json.Number.
//
//	var signup = props.NewRequestSchema("signup",
//	    props.Named("email", props.Email()),
//	    props.Named("age", props.Int(props.Min(18))),
//	)
//
//	r.Post("/signup", binder.Handler(signup, log,
//	    func(w http.ResponseWriter, r *http.Request, doc *props.Document) {
//	        createUser(r.Context(), doc.String("email"), doc.Int("age"))
//	    },
//	))
//
// Failed requests are answered by WriteError: 422 with per-field messages for
// validation failures, 400 for malformed bodies, 413 and 415 for oversized or
// unsupported bodies.
package binder
