package api

import (
	"encoding/json"
	"net/http"
)

// DataResponse wraps a single resource payload.
type DataResponse struct {
	Data any `json:"data"`
}

// ListResponse wraps a collection payload together with a total count.
type ListResponse struct {
	Data  any `json:"data"`
	Total int `json:"total"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Data(w http.ResponseWriter, status int, v any) {
	WriteJSON(w, status, DataResponse{Data: v})
}

func List(w http.ResponseWriter, data any, total int) {
	WriteJSON(w, http.StatusOK, ListResponse{Data: data, Total: total})
}

func Success(w http.ResponseWriter) {
	WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
