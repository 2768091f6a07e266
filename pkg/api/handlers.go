package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/sectiongrid/pkg/buildinfo"
	"github.com/matzehuels/sectiongrid/pkg/editor"
	"github.com/matzehuels/sectiongrid/pkg/errors"
	"github.com/matzehuels/sectiongrid/pkg/grid"
	sgio "github.com/matzehuels/sectiongrid/pkg/io"
)

// EditRequest is the body of PATCH /boards/{board}/blocks/{id}.
type EditRequest struct {
	Width      grid.Width     `json:"width,omitempty"`
	ColumnSpan int            `json:"columnSpan,omitempty"`
	RowSpan    int            `json:"rowSpan,omitempty"`
	Content    map[string]any `json:"content,omitempty"`
}

// MoveRequest is the body of POST /boards/{board}/blocks/{id}/move.
type MoveRequest struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "build": buildinfo.Get()})
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	ids, err := s.runner.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"boards": ids})
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")
	if err := errors.ValidateBoardID(board); err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.runner.Export(r.Context(), board)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// handlePutBoard replaces the board. ?allowOverlap=true accepts documents
// with overlapping blocks.
func (s *Server) handlePutBoard(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")
	d, err := sgio.ReadJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid board document"))
		return
	}
	allow, _ := strconv.ParseBool(r.URL.Query().Get("allowOverlap"))
	b, err := s.runner.Import(r.Context(), board, d, sgio.Options{AllowOverlap: allow})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sgio.NewDocument(board, b))
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	if err := s.runner.Delete(r.Context(), chi.URLParam(r, "board")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	board := chi.URLParam(r, "board")
	if err := errors.ValidateBoardID(board); err != nil {
		s.writeError(w, r, err)
		return
	}
	rep, err := s.runner.Check(r.Context(), board)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleCreateBlock(w http.ResponseWriter, r *http.Request) {
	var req editor.BlockRequest
	if !s.decode(w, r, &req) {
		return
	}
	p, err := s.runner.Create(r.Context(), chi.URLParam(r, "board"), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleEditBlock(w http.ResponseWriter, r *http.Request) {
	var req EditRequest
	if !s.decode(w, r, &req) {
		return
	}
	e := grid.Edit{RowSpan: req.RowSpan, ColumnSpan: req.ColumnSpan, Content: req.Content}
	if req.Width != "" {
		width, err := grid.ParseWidth(string(req.Width))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		e.ColumnSpan = width.Columns()
	}
	p, err := s.runner.Edit(r.Context(), chi.URLParam(r, "board"), chi.URLParam(r, "id"), e)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleMoveBlock(w http.ResponseWriter, r *http.Request) {
	var req MoveRequest
	if !s.decode(w, r, &req) {
		return
	}
	to := grid.Anchor{Row: req.Row, Column: req.Column}
	res, err := s.runner.Move(r.Context(), chi.URLParam(r, "board"), chi.URLParam(r, "id"), to)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleRemoveBlock(w http.ResponseWriter, r *http.Request) {
	if err := s.runner.Remove(r.Context(), chi.URLParam(r, "board"), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON body into v, writing a 400 response on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return false
	}
	return true
}
