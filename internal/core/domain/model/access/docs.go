// Package access resolves a verified principal into a role scope and answers the
// authorization questions every engine operation asks before it touches state.
//
// Roles form a closed enum (Client, Operator, Admin). Every check is a switch over
// that enum rather than a string comparison, and the engine never consults ambient
// session state: callers pass the Principal explicitly into each command and query.
package access
