// Package sanitizer normalizes free-text form input before validation.
//
// All functions are idempotent: applying them twice gives the same result as
// applying them once. They never fail; input that normalizes to nothing comes
// back empty.
package sanitizer
