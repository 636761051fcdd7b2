package rest

import (
	"net/http"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/services"
)

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	in := decodeBody[services.RegisterInput](w, r)

	resp, err := s.auth.Register(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	in := decodeBody[services.LoginInput](w, r)

	resp, err := s.auth.Login(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFromContext(r.Context()))
}

func (s *HTTPServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, ok := common.BearerToken(r.Header.Get(common.AuthorizationHeaderName))
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthenticatedBody)
		return
	}

	if err := s.auth.Logout(r.Context(), token); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Successfully logged out"})
}

func (s *HTTPServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	token, ok := common.BearerToken(r.Header.Get(common.AuthorizationHeaderName))
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthenticatedBody)
		return
	}

	resp, err := s.auth.Refresh(r.Context(), token)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
