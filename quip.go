// Package quip provides a small template language for chat-bot responses.
//
// A template is literal text with ${...} interpolations:
//
//	Hi ${sender}, ${they} ${are} playing ${sender.game}!
//
// # Basic Usage
//
// Create an engine, parse a template once and render it per invocation:
//
//	engine := quip.MustNew(quip.WithHost(directory))
//	tmpl, err := engine.Parse("Hello ${1}, from ${sender}")
//	out, err := tmpl.Execute(ctx, quip.Invocation{
//	    Sender:  sender,
//	    Message: "!hello world",
//	})
//	// out: "Hello world, from Nya"
//
// # Template Syntax
//
// Inside ${...}:
//
//	sender, broadcaster, bot     identities supplied by the Host
//	they, Them, THEIR, are, ...  pronoun words, rendered for the sender
//	1, -1, 1:-1                  positional message tokens and inclusive ranges
//	<name>                       named capture group of the command pattern
//	!expr                        boolean negation
//	expr.name, expr.pronouns(x)  properties and methods
//	assert(x), void(...), time('Europe/Berlin')
//	'text ${...}'                quoted text, which may interpolate again
//
// A backslash escapes "$" and "\" in text, and the quote inside quoted text.
//
// # Diagnostics
//
// Unknown names or wrong argument counts never fail parsing. They compile to
// null values and are reported through Template.Diagnostics and Engine.Validate.
//
// # Hosts
//
// The Host interface supplies user lookup, activity and pronoun data. The
// package ships MemoryDirectory (optionally loaded from YAML) and
// PostgresDirectory.
package quip
