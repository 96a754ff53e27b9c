package server

import (
	"net/http"

	"github.com/fracshare/rwaledger/internal/domain"
)

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	unreadOnly := r.URL.Query().Get("unread") == "true"
	notifications, err := s.notifications.ListForUser(r.Context(), caller, unreadOnly)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (s *Server) handleListAllNotifications(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	notifications, err := s.notifications.ListAll(r.Context(), caller)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (s *Server) handleGetNotification(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	n, err := s.notifications.GetNotification(r.Context(), caller, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	n, err := s.notifications.MarkRead(r.Context(), caller, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	user, err := domain.ParseIdentity(pathParam(r, "user"))
	if err != nil {
		writeError(w, domain.Errorf(domain.KindInvalidArgument, "invalid user id"))
		return
	}
	p, err := s.portfolios.GetPortfolio(r.Context(), user)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleListPortfolios(w http.ResponseWriter, r *http.Request) {
	portfolios, err := s.portfolios.ListPortfolios(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, portfolios)
}
