package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"cloud.google.com/go/storage"
)

// UploadPhotoGCS stores an execution photo in the Cloud Storage bucket
// named by GCS_BUCKET. The object is public-read; mobile clients embed the
// returned URL directly in the execution record.
func UploadPhotoGCS(w http.ResponseWriter, r *http.Request) {
	bucketName := os.Getenv("GCS_BUCKET")
	if bucketName == "" {
		http.Error(w, "GCS_BUCKET not configured", http.StatusInternalServerError)
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

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	client, err := storage.NewClient(ctx)
	if err != nil {
		http.Error(w, "storage client: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer client.Close()

	objectName := fmt.Sprintf("photos/%s-%s", time.Now().Format("20060102-150405"), header.Filename)
	obj := client.Bucket(bucketName).Object(objectName)
	writer := obj.NewWriter(ctx)
	writer.ContentType = header.Header.Get("Content-Type")

	if _, err := io.Copy(writer, file); err != nil {
		writer.Close()
		http.Error(w, "failed to upload file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := writer.Close(); err != nil {
		http.Error(w, "failed to finalize upload: "+err.Error(), http.StatusInternalServerError)
		return
	}

	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectName)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"url":      url,
		"filename": objectName,
	})
}
