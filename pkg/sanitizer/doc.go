// Package sanitizer normalizes free-form user input before it is validated
// and forwarded upstream.
//
// All functions are idempotent and never fail: input that cannot be
// normalized is returned in a form the validators will reject.
//
// Normalization includes:
//   - Phone numbers: national significant number for the default region (IN)
//   - Strings: collapse whitespace, trim leading/trailing spaces
//   - Emails: trimmed and lowercased
//   - Pagination: page clamped to zero, size clamped to [1, max]
package sanitizer
