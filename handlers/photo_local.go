package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const photoDir = "./uploads/photos"

// UploadPhotoLocal stores an execution photo on the local filesystem for
// development setups without a bucket.
func UploadPhotoLocal(w http.ResponseWriter, r *http.Request) {
	if err := os.MkdirAll(photoDir, 0755); err != nil {
		http.Error(w, "failed to create upload directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := r.ParseMultipartForm(20 << 20); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "missing photo field: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("%s-%s", timestamp, header.Filename)
	dst, err := os.Create(filepath.Join(photoDir, filename))
	if err != nil {
		http.Error(w, "failed to create file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		http.Error(w, "failed to save file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"url":      fmt.Sprintf("/uploads/photos/%s", filename),
		"filename": filename,
	})
}
