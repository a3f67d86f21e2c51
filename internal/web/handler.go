// Package web serves the form-driven HTML flow: pick a genre, list its books,
// rank the top ten, choose one. Each step carries the genre in a form field;
// nothing about a visitor's browsing is kept on the server.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"bookrec/internal/httpx"
	"bookrec/internal/logger"
	"bookrec/internal/recommend"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"index", "books", "top_books", "selected_book", "thank_you"}

type Handler struct {
	svc       *recommend.Service
	templates map[string]*template.Template
}

func NewHandler(svc *recommend.Service) (*Handler, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = t
	}
	return &Handler{svc: svc, templates: templates}, nil
}

// Register mounts the HTML routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("POST /recommend-books", h.RecommendBooks)
	mux.HandleFunc("POST /top-ten-books", h.TopTenBooks)
	mux.HandleFunc("POST /select-book", h.SelectBook)
	mux.HandleFunc("POST /thank-you", h.ThankYou)
}

type pageData struct {
	Genre    string
	Books    []recommend.Book
	Selected *recommend.Book
	Degraded bool
	Error    string
}

type genreForm struct {
	Genre string `validate:"required,max=100,searchterm"`
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "index", pageData{})
}

func (h *Handler) RecommendBooks(w http.ResponseWriter, r *http.Request) {
	genre, ok := h.genreFromForm(w, r)
	if !ok {
		return
	}

	res, err := h.svc.Recommend(r.Context(), genre)
	if err != nil {
		h.renderFetchError(w, r, genre, res, err)
		return
	}
	h.render(w, r, http.StatusOK, "books", pageData{Genre: genre, Books: res.Books})
}

func (h *Handler) TopTenBooks(w http.ResponseWriter, r *http.Request) {
	genre, ok := h.genreFromForm(w, r)
	if !ok {
		return
	}

	res, err := h.svc.TopBooks(r.Context(), genre, recommend.DefaultTopN)
	if err != nil {
		h.renderFetchError(w, r, genre, res, err)
		return
	}
	h.render(w, r, http.StatusOK, "top_books", pageData{Genre: genre, Books: res.Books})
}

func (h *Handler) SelectBook(w http.ResponseWriter, r *http.Request) {
	genre, ok := h.genreFromForm(w, r)
	if !ok {
		return
	}
	title := r.PostFormValue("book_title")

	book, err := h.svc.SelectBook(r.Context(), genre, title)
	switch {
	case err == nil:
		h.render(w, r, http.StatusOK, "selected_book", pageData{Genre: genre, Selected: &book})
	case errors.Is(err, recommend.ErrNotFound):
		h.render(w, r, http.StatusNotFound, "selected_book", pageData{Genre: genre})
	default:
		h.renderFetchError(w, r, genre, recommend.Result{}, err)
	}
}

func (h *Handler) ThankYou(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "thank_you", pageData{})
}

func (h *Handler) genreFromForm(w http.ResponseWriter, r *http.Request) (string, bool) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, "index", pageData{Error: "The form could not be read."})
		return "", false
	}
	form := genreForm{Genre: r.PostFormValue("genre")}
	if details := httpx.ValidateStruct(form); len(details) > 0 {
		h.render(w, r, http.StatusBadRequest, "index", pageData{Genre: form.Genre, Error: "Please enter a genre."})
		return "", false
	}
	return form.Genre, true
}

func (h *Handler) renderFetchError(w http.ResponseWriter, r *http.Request, genre string, res recommend.Result, err error) {
	if recommend.IsTransport(err) {
		h.render(w, r, http.StatusBadGateway, "books", pageData{
			Genre:    genre,
			Books:    res.Books,
			Degraded: true,
		})
		return
	}
	logger.For(r.Context()).WithError(err).Error("genre fetch failed")
	h.render(w, r, http.StatusInternalServerError, "index", pageData{
		Genre: genre,
		Error: "Something went wrong, please try again.",
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	var buf bytes.Buffer
	if err := h.templates[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.For(r.Context()).WithError(err).Errorf("render %s", page)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
