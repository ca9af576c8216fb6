// Package validation evaluates per-field rule sets against observable values
// and resolves failures into localized messages.
//
// A Rule answers with a Result, which is either an immediate Outcome or a
// deferred one computed on its own goroutine. Callers never branch on the
// kind: Result.Await returns the Outcome in both cases, and a deferred
// computation that errors or panics becomes a transport failure instead of
// escaping.
//
// Messages are resolved lazily. WithMessage attaches a Resolver to a rule; the
// Resolver derives the key "validation.<type>", lets a message carried by the
// outcome replace it, lets an override replace both, and hands the key with
// every rule parameter to a Translator on each FieldError.Message call.
//
// # Fields
//
//	name := reactive.NewValue("")
//	field := validation.NewField("name", name,
//	    validation.WithRules(set.Required(), set.ValidProjectName(owner)),
//	)
//	defer field.Close()
//
//	name.Set("my-project")
//	ok, err := field.Validate(ctx)
//	for _, e := range field.Errors() {
//	    fmt.Println(e.Message(ctx))
//	}
//
// Every change of the value starts a new evaluation with a fresh token.
// Outcomes of superseded evaluations are dropped, so typing quickly never
// leaves the field showing the verdict for an older value. A field with a
// rule still in flight reports StatusPending.
//
// Errors come in two sets. SilentErrors lists every failing rule.
// SurfacedErrors lists them only once the field is dirty (after Touch,
// Validate, or any change when WithAutoDirty is set). Errors returns the
// external errors followed by one of the two sets, selected by SetSilent.
package validation
