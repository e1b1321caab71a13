// Package props is a declarative validation and coercion engine for
// already-parsed values: maps, slices and scalars as produced by JSON
// decoding, environment lookups or explicit overrides.
//
// A Property validates one value. Leaf kinds are String, Int, Float, Number,
// Bool, Date, Datetime, Email, Regex, Uuid, Password and Choice. AnyOf tries
// alternatives in order. Array, Nested, Model, Inline and Compound build
// structure out of other properties.
//
// Every property tells three inputs apart. Absent means the key was missing,
// nil means an explicit null, and anything else is a concrete value checked by
// the property kind. Defaults apply to Absent input and are never validated.
// Nullable properties turn both Absent and null into nil.
//
// # Schemas
//
//	signup := props.NewRequestSchema("signup",
//	    props.Named("email", props.Email()),
//	    props.Named("password", props.Password(props.MinLength(8))),
//	    props.Named("age", props.Int(props.Min(18), props.Nullable())),
//	    props.Named("tags", props.Array(props.String(), props.MaxItems(5), props.Default([]any{}))),
//	)
//
//	doc, err := signup.Load(body)
//	if err != nil {
//	    for path, perr := range props.ExtractBatchError(err).All() {
//	        log.Printf("%s: %s (%s)", path, perr.Message, perr.Kind)
//	    }
//	}
//
// Schema.Load checks every field before returning, so a single *BatchError
// carries all failures with their paths ("address.zip", "tags[2]").
// RequestSchema.Load wraps the same batch in a *RequestValidationError.
//
// Properties, schemas and documents are immutable and safe for concurrent use.
package props
