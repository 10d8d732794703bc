package parser

import "strconv"

// parseFloat converts a scanned number lexeme into its float64 value;
// numeric conversion is deferred from the lexer to the parser.
func parseFloat(lexeme string) (float64, error) {
	return strconv.ParseFloat(lexeme, 64)
}
