package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/nikolayk812/roze-storefront/internal/domain"
	"github.com/nikolayk812/roze-storefront/internal/service"
	"go.uber.org/zap"
)

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.ListProducts(r.Context(), r.URL.Query().Get("categoria"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	product, err := s.catalog.GetProduct(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductResponse(product))
}

// handleProductCategories lists the categories shown in the storefront
// filter bar: only those some product uses.
func (s *Server) handleProductCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalog.ProductCategories(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalog.ListCategories(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryBody
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	name, err := s.catalog.AddCategory(r.Context(), req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, categoryBody{Name: name})
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	s.saveProduct(w, r, uuid.Nil, http.StatusCreated)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.saveProduct(w, r, id, http.StatusOK)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.catalog.DeleteProduct(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// saveProduct reads the multipart product form. The optional "imagem" file
// part becomes the product image.
func (s *Server) saveProduct(w http.ResponseWriter, r *http.Request, id uuid.UUID, status int) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: malformed product form: %v", domain.ErrInvalidInput, err))
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			s.log.Warn("remove multipart files", zap.Error(err))
		}
	}()

	in := service.ProductInput{
		ID:          id,
		Name:        r.FormValue("nome"),
		Price:       r.FormValue("preco"),
		Volume:      r.FormValue("volume"),
		Description: r.FormValue("descricao"),
		Category:    r.FormValue("categoria"),
		NewCategory: r.FormValue("nova_categoria"),
	}

	file, header, err := r.FormFile("imagem")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		s.writeError(w, r, fmt.Errorf("%w: image: %v", domain.ErrInvalidInput, err))
		return
	default:
		defer file.Close()
		in.Image = &service.ImageUpload{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		}
	}

	product, err := s.catalog.SaveProduct(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, status, toProductResponse(product))
}

func pathID(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: id[%s] is not a UUID", domain.ErrInvalidInput, raw)
	}
	if id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: id is empty", domain.ErrInvalidInput)
	}

	return id, nil
}
