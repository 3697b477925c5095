package yql

import "strings"

// quoteStripper removes the YQL string-literal delimiter and neutralizes the
// escape character. Double quotes are removed rather than escaped so a value
// can never terminate the literal it is interpolated into; backslashes become
// spaces so no escape sequence survives.
var quoteStripper = strings.NewReplacer(
	`"`, "",
	`\`, " ",
)

// Sanitize makes a value safe for interpolation into a YQL string literal.
// Whitespace runs (tabs and newlines included) collapse to single spaces and
// the result is trimmed. Always succeeds; empty input yields empty output.
func Sanitize(input string) string {
	return strings.Join(strings.Fields(quoteStripper.Replace(input)), " ")
}
