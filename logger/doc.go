/*
Package logger provides logging functionality to a tojson app by defining the required behavior in [Logger]
and providing an implementation of it with [TojsonLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.

Log messages emitted by [TojsonLogger] are composed of:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2022/04/28 15:55:21 [DEBUG] middleware/auth.go:43 'basic auth rejected' log_context: {"data":{"reason":"no colon"}}

The log context is a JSON-encoded [*LogContext].
Credentials carried in request headers or forms are masked before they are encoded.

# SentryLogger

When the SENTRY_DSN environment variable is set, [New] returns a [SentryLogger]
that additionally ships errors logged at warn level or higher to Sentry.
*/
package logger
