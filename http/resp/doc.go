/*
Package resp turns the values HTTP handlers return into JSON responses.

A [Renderer] renders a value according to [Options]:

	rr := resp.NewRenderer(resp.WithEnv(tojson.Development))
	res := rr.Render(map[string]any{"go": "rocks"}, resp.Options{})

Most code never calls Render directly, but wraps a [HandlerFunc] with [Renderer.AsJSON]:

	rr.AsJSON(resp.Options{}, func(r *http.Request) (any, []resp.Opt) {
		if !found {
			return map[string]any{"success": false}, []resp.Opt{resp.UseClass(resp.NotFound)}
		}

		return thing, nil
	})

A handler returning a *Response bypasses rendering entirely.
*/
package resp
