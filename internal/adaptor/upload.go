package adaptor

import (
	"errors"
	"net/http"

	"airport-api/internal/usecase"
	"airport-api/pkg/utils"
)

// multipartOverhead leaves room for boundaries and headers around the file.
const multipartOverhead = 1 << 20

// imageUpload reads the "image" part of a multipart request. The returned
// close func must be called once the upload has been consumed.
func imageUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (usecase.ImageUpload, func(), bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseTooLarge(w, "Uploaded file is too large")
			return usecase.ImageUpload{}, nil, false
		}
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return usecase.ImageUpload{}, nil, false
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.ResponseBadRequest(w, "Validation failed", map[string]string{"image": "This field is required"})
		return usecase.ImageUpload{}, nil, false
	}

	cleanup := func() {
		file.Close()
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}
	return usecase.ImageUpload{Filename: header.Filename, Content: file}, cleanup, true
}
