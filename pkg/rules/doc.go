// Package rules provides the rule catalog used by form fields: builtin
// synchronous rules and remote availability rules backed by the API.
//
//	set := rules.New(translator, client)
//	field := validation.NewField("name", name, validation.WithRules(
//	    set.Required(),
//	    set.MaxLength(25),
//	    set.ValidChannelName(projectID, reactive.Static(""), "channel.new.error.nameTaken"),
//	))
//
// Remote rules never judge required-ness: an absent value passes without a
// call. A backend rejection becomes an invalid outcome carrying the backend
// message (or a default key). Any other failure becomes an invalid outcome
// with no message, so the field shows the generic "validation.<type>" text
// rather than claiming the value is taken.
package rules
