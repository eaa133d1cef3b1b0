// Package router assembles the versioned API route tree.
package router

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// Router mounts DomainGroups under /api/<version>
type Router struct {
	engine     *gin.Engine
	apiVersion string
	middleware []gin.HandlerFunc
	groups     []*DomainGroup
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion sets the version segment of the API prefix, "v1" by default
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) { r.apiVersion = version }
}

func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BasePath is the prefix every group is mounted under
func (r *Router) BasePath() string {
	return "/api/" + r.apiVersion
}

// Use adds middleware that runs for API routes only, not /health or /swagger
func (r *Router) Use(middleware ...gin.HandlerFunc) *Router {
	r.middleware = append(r.middleware, middleware...)
	return r
}

// Register queues a group for Setup
func (r *Router) Register(g *DomainGroup) *Router {
	r.groups = append(r.groups, g)
	return r
}

// Setup mounts every registered group on the engine
func (r *Router) Setup() {
	api := r.engine.Group(r.BasePath(), r.middleware...)
	for _, g := range r.groups {
		g.mount(api)
	}
}

// Route is one registered endpoint
type Route struct {
	Group  string
	Method string
	Path   string
}

// Routes lists the endpoints of the registered groups with full paths, in
// registration order
func (r *Router) Routes() []Route {
	var out []Route
	for _, g := range r.groups {
		out = g.collect(r.BasePath(), out)
	}
	return out
}

// DomainGroup is the route set of one module, e.g. owners or ledger. Each
// route carries its own permission middleware in its handler chain.
type DomainGroup struct {
	name       string
	prefix     string
	routes     []Route
	handlers   [][]gin.HandlerFunc
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
}

func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

func (dg *DomainGroup) Name() string   { return dg.name }
func (dg *DomainGroup) Prefix() string { return dg.prefix }

// Use adds middleware to this group and its subgroups
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

func (dg *DomainGroup) handle(method, p string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, Route{Group: dg.name, Method: method, Path: p})
	dg.handlers = append(dg.handlers, handlers)
	return dg
}

func (dg *DomainGroup) GET(p string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, p, handlers)
}

func (dg *DomainGroup) POST(p string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, p, handlers)
}

func (dg *DomainGroup) PUT(p string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPut, p, handlers)
}

func (dg *DomainGroup) PATCH(p string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPatch, p, handlers)
}

func (dg *DomainGroup) DELETE(p string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodDelete, p, handlers)
}

// Group adds a nested group, e.g. clearance/drafts
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	sub := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, sub)
	return sub
}

func (dg *DomainGroup) mount(parent *gin.RouterGroup) {
	group := parent.Group(dg.prefix, dg.middleware...)
	for i, route := range dg.routes {
		group.Handle(route.Method, route.Path, dg.handlers[i]...)
	}
	for _, sub := range dg.subgroups {
		sub.mount(group)
	}
}

func (dg *DomainGroup) collect(base string, out []Route) []Route {
	base = joinPath(base, dg.prefix)
	for _, route := range dg.routes {
		route.Path = joinPath(base, route.Path)
		out = append(out, route)
	}
	for _, sub := range dg.subgroups {
		out = sub.collect(base, out)
	}
	return out
}

// joinPath joins like gin does: an empty suffix keeps the base unchanged
func joinPath(base, suffix string) string {
	if suffix == "" {
		return base
	}
	joined := path.Join(base, suffix)
	if suffix[len(suffix)-1] == '/' && joined[len(joined)-1] != '/' {
		joined += "/"
	}
	return joined
}
