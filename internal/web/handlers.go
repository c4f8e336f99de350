package web

import (
	"net/http"

	"github.com/evcraddock/campus-explorer/internal/metrics"
)

type checkInRequest struct {
	Landmark string `json:"landmark" validate:"required"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (s *Server) apiListVisits(w http.ResponseWriter, r *http.Request) {
	visits, err := s.visits.List(usernameParam(r))
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, visits, http.StatusOK)
}

func (s *Server) apiCheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if !decodeBody(w, r, &req) {
		return
	}

	v, err := s.visits.CheckIn(usernameParam(r), req.Landmark)
	if err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, v, http.StatusCreated)
}

func (s *Server) apiUndoVisit(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	if err := s.visits.Undo(usernameParam(r), id); err != nil {
		apiFail(w, r, err)
		return
	}
	apiJSON(w, map[string]interface{}{"id": id, "removed": true}, http.StatusOK)
}

func (s *Server) apiProgress(w http.ResponseWriter, r *http.Request) {
	report, err := s.progress.MyProgress(usernameParam(r))
	if err != nil {
		apiFail(w, r, err)
		return
	}

	metrics.RecordProgressQuery(metrics.KindReport)
	apiJSON(w, report, http.StatusOK)
}

func (s *Server) apiSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.progress.ViewProgress(usernameParam(r))
	if err != nil {
		apiFail(w, r, err)
		return
	}

	metrics.RecordProgressQuery(metrics.KindSummary)
	apiJSON(w, summary, http.StatusOK)
}
