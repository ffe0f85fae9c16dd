package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/unkn0wn-root/dictcache"
)

type routeRegistrationFunc func(dict dictcache.Service, router *http.ServeMux)

var routes []routeRegistrationFunc

func registerRoute(r routeRegistrationFunc) {
	routes = append(routes, r)
}

// AddApis mounts every dictionary endpoint under /api/.
func AddApis(dict dictcache.Service, router *http.ServeMux) {
	slog.Debug("Registering all API Endpoints", "count", len(routes))
	apiRouter := http.NewServeMux()
	for _, r := range routes {
		r(dict, apiRouter)
	}
	router.Handle("/api/", http.StripPrefix("/api", apiRouter))
}

type dictHandler func(dict dictcache.Service, w http.ResponseWriter, r *http.Request)

func routeHandler(dict dictcache.Service, handler dictHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler(dict, w, r)
	})
}

func writeJsonResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("Unable to write response", "error", err)
	}
}

func writeJsonError(w http.ResponseWriter, statusCode int, msg string) {
	writeJsonResponse(w, statusCode, map[string]string{"error": msg})
}
