// Package script embeds Starlark so literals can be built and compared
// from scripts and an interactive REPL.
//
//	t = literal.time("14:30:00-05:00")
//	u = literal.time(time.time(year=2024, hour=19, minute=30))
//	print(t == u, t.canonical)
package script
