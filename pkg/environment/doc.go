// Package environment names the deployment environments and carries the
// current one through request contexts.
//
//	env := environment.Parse(os.Getenv("APP_ENV"))
//	r.Use(environment.Middleware(env))
//
//	if environment.IsDevelopment(ctx) {
//	    body.Detail = err.Error()
//	}
package environment
