package service

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-todo-offline/models"
)

// Route is the strategy bucket a request is handled by.
type Route int

const (
	RouteNavigation Route = iota
	RouteMutation
	RouteRead
	RouteStatic
	RouteDefault
)

func (r Route) String() string {
	switch r {
	case RouteNavigation:
		return "navigation"
	case RouteMutation:
		return "mutation"
	case RouteRead:
		return "read"
	case RouteStatic:
		return "static"
	default:
		return "default"
	}
}

// Classify assigns req to exactly one route. Rules are checked in order, so a
// navigation to a task path still gets navigation treatment.
//
//  1. navigation: GET with navigate intent or an Accept header asking for HTML
//  2. mutation:   same-origin POST under taskPath
//  3. read:       same-origin GET under taskPath
//  4. static:     any other same-origin GET
//  5. default:    everything else
func Classify(req models.Request, taskPath string) Route {
	isGet := req.Method == http.MethodGet
	underTaskPath := req.SameOrigin && taskPath != "" && strings.HasPrefix(req.Path, taskPath)

	switch {
	case isGet && (req.Navigate || req.AcceptsHTML()):
		return RouteNavigation
	case req.Method == http.MethodPost && underTaskPath:
		return RouteMutation
	case isGet && underTaskPath:
		return RouteRead
	case isGet && req.SameOrigin:
		return RouteStatic
	}

	return RouteDefault
}
