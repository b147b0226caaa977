// Package parsers holds the platform parsers that turn chat exports into
// canonical messages. Each platform lives in its own subpackage and
// implements driven.Parser; the shared subpackages provide the eager and
// lazy drivers the platforms build on.
//
// Parsers are registered with the ParserRegistry at startup.
package parsers
