package api

import (
	"fmt"
	"net/http"

	"github.com/Veraticus/cashiering/internal/common"
	"github.com/Veraticus/cashiering/internal/dashboard"
	"github.com/Veraticus/cashiering/internal/export"
	"github.com/Veraticus/cashiering/internal/model"
	"github.com/Veraticus/cashiering/internal/tui/viewmodel"
	"github.com/go-chi/chi/v5"
)

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]any{"status": "ok", "sessions": s.sessions.Len()})
}

// withSession runs fn on the URL's account session and writes the returned
// snapshot, or the error.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*dashboard.Session) error) {
	accountID := chi.URLParam(r, "accountID")
	var snapshot viewmodel.DashboardView
	err := s.sessions.Do(r.Context(), accountID, func(sess *dashboard.Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		snapshot = sess.Snapshot()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.ViewDerivations.WithLabelValues(snapshot.Pivot).Inc()
	s.writeJSON(w, r, http.StatusOK, snapshot)
}

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(*dashboard.Session) error { return nil })
}

func (s *Server) putView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.withSession(w, r, func(sess *dashboard.Session) error {
		sess.SetParams(req.apply(sess.Params()))
		return nil
	})
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *dashboard.Session) error {
		sess.Load(r.Context())
		return nil
	})
}

func (s *Server) toggleSelection(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	key := chi.URLParam(r, "key")

	var resp toggleResponse
	err := s.sessions.Do(r.Context(), accountID, func(sess *dashboard.Session) error {
		selected, err := sess.Toggle(key)
		if err != nil {
			return err
		}
		resp = toggleResponse{Dashboard: sess.Snapshot(), Key: key, Selected: selected}
		return nil
	})
	if err != nil {
		s.metrics.SelectionToggles.WithLabelValues("unknown").Inc()
		s.writeError(w, r, err)
		return
	}

	result := "deselected"
	if resp.Selected {
		result = "selected"
	}
	s.metrics.SelectionToggles.WithLabelValues(result).Inc()
	s.writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) clearSelection(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *dashboard.Session) error {
		sess.ClearSelection()
		return nil
	})
}

func (s *Server) openDelivery(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *dashboard.Session) error {
		if !sess.OpenDelivery() {
			return errNoSelection
		}
		return nil
	})
}

func (s *Server) patchDelivery(w http.ResponseWriter, r *http.Request) {
	var req deliveryPatch
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.withSession(w, r, func(sess *dashboard.Session) error {
		if req.Address != nil {
			if err := sess.SetDeliveryAddress(*req.Address); err != nil {
				return err
			}
		}
		if req.Carrier != nil {
			if err := sess.SetDeliveryCarrier(*req.Carrier); err != nil {
				return err
			}
		}
		if req.Comments != nil {
			if err := sess.SetDeliveryComments(*req.Comments); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Server) cancelDelivery(w http.ResponseWriter, r *http.Request) {
	s.withSession(w, r, func(sess *dashboard.Session) error {
		sess.CancelDelivery()
		return nil
	})
}

func (s *Server) confirmDelivery(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	var req model.DeliveryRequest
	err := s.sessions.Do(r.Context(), accountID, func(sess *dashboard.Session) error {
		var ok bool
		req, ok = sess.ConfirmDelivery(r.Context())
		if !ok {
			return errIncomplete
		}
		return nil
	})
	if err != nil {
		s.metrics.DeliveryRequests.WithLabelValues("rejected").Inc()
		s.writeError(w, r, err)
		return
	}

	s.metrics.DeliveryRequests.WithLabelValues("confirmed").Inc()
	s.writeJSON(w, r, http.StatusCreated, toDeliveryResponse(req))
}

func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")
	key := chi.URLParam(r, "key")

	var detail viewmodel.DetailView
	err := s.sessions.Do(r.Context(), accountID, func(sess *dashboard.Session) error {
		var err error
		detail, err = sess.Detail(r.Context(), key)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, detail)
}

func (s *Server) report(r *http.Request) (export.Report, error) {
	accountID := chi.URLParam(r, "accountID")
	var report export.Report
	err := s.sessions.Do(r.Context(), accountID, func(sess *dashboard.Session) error {
		report = sess.Report(s.now())
		return nil
	})
	return report, err
}

// exportView serves the account's current view as a document in format.
func (s *Server) exportView(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := s.report(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		data, err := export.Render(report, format)
		if err != nil {
			s.writeError(w, r, fmt.Errorf("build %s: %w", format, err))
			return
		}
		s.metrics.Exports.WithLabelValues(format).Inc()
		s.writeDocument(w, contentType, report.FileName(format), data)
	}
}

func (s *Server) deliveryManifest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "requestID")
	req, ok := s.recorder.Find(id)
	if !ok {
		s.writeError(w, r, fmt.Errorf("delivery request %s: %w", id, common.ErrNotFound))
		return
	}
	data, err := export.BuildDeliveryManifestPDF(req)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("build manifest: %w", err))
		return
	}
	s.metrics.Exports.WithLabelValues("manifest").Inc()
	s.writeDocument(w, "application/pdf", "delivery-"+id+".pdf", data)
}
