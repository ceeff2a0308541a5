// Package mathguard implements the symbolic math verification backend. It
// parses single-variable polynomial expressions over exact rational
// coefficients, applies the requested operation (derivative, integral,
// simplify, solve or evaluate) and compares the outcome against the result
// claimed by the caller.
package mathguard
