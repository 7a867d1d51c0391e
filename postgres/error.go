package postgres

import "regexp"

// errUniqViolation matches the error PostgreSQL raises when a unique constraint is violated.
//
// Cf., https://www.postgresql.org/docs/current/errcodes-appendix.html
var errUniqViolation = regexp.MustCompile(`SQLSTATE 23505`)
