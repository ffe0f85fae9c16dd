package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/unkn0wn-root/dictcache"
)

func init() {
	registerRoute(func(dict dictcache.Service, router *http.ServeMux) {
		router.Handle("POST /dict", routeHandler(dict, addConfigHandler))
		router.Handle("GET /dict", routeHandler(dict, listDictHandler))
		router.Handle("GET /dict/{type}", routeHandler(dict, dictByTypeHandler))
		router.Handle("POST /dict/refresh", routeHandler(dict, refreshHandler))
	})
}

type addConfigRequest struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Code      string `json:"code"`
	Value     string `json:"value"`
	Label     string `json:"label"`
	SortOrder int    `json:"sortOrder"`
	Status    *int   `json:"status"`
	Remark    string `json:"remark"`
}

func (r addConfigRequest) entry() dictcache.Entry {
	e := dictcache.Entry{
		ID:        r.ID,
		Type:      strings.TrimSpace(r.Type),
		Code:      r.Code,
		Value:     r.Value,
		Label:     r.Label,
		SortOrder: r.SortOrder,
		Status:    dictcache.StatusValid,
		Remark:    r.Remark,
	}
	if r.Status != nil {
		e.Status = *r.Status
	}
	return e
}

type addConfigResponse struct {
	ID string `json:"id"`
}

func addConfigHandler(dict dictcache.Service, w http.ResponseWriter, r *http.Request) {
	var req addConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJsonError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	e := req.entry()
	if e.Type == "" {
		writeJsonError(w, http.StatusBadRequest, "type is required")
		return
	}

	id, err := dict.AddConfig(r.Context(), e)
	if err != nil {
		slog.Error("Unable to add dictionary entry", "type", e.Type, "code", e.Code, "error", err)
		writeJsonError(w, http.StatusInternalServerError, "Unable to add dictionary entry")
		return
	}
	writeJsonResponse(w, http.StatusAccepted, addConfigResponse{ID: id})
}

func listDictHandler(dict dictcache.Service, w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, dict.GetAllGrouped(r.Context()))
}

func dictByTypeHandler(dict dictcache.Service, w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, dict.GetByType(r.Context(), r.PathValue("type")))
}

func refreshHandler(dict dictcache.Service, w http.ResponseWriter, r *http.Request) {
	dict.Refresh(dictcache.Entry{})
	w.WriteHeader(http.StatusAccepted)
}
