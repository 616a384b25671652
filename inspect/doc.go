// Package inspect exposes a container's registrations over HTTP.
//
//	router := gin.New()
//	inspect.Register(router.Group("/debug/di"), container)
//
// GET /aliases lists every registration; GET /aliases/:alias returns one.
// The handlers read the registry only and never resolve an alias.
package inspect
