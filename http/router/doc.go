/*
Package router defines how a tojson HTTP server routes requests.

A [Router] leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path and an HTTP method comprise a [Route].
An implementation of [http.Handler] is the function called when a request matches a Route,
most oftentimes one built by [resp.AsJSON].
Before a request gets to a handler, though,
any middlewares added to the Route are called in the order they appear.

It is often the case that many routes for a web server share identical middleware stacks.
It is also often the case that small errors can lead to registering a route incorrectly,
thereby unintentionally exposing a resource.
Thus, a [Router] provides ProtectedRoutes for registering many Routes behind the same gate in a single call.

[*Router] utilizes [mux.Router] for its implementation,
and so functions as thin wrapper around that package.
*/
package router
