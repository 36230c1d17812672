package handlers

import (
	"net/http"
	"os"
)

// UploadPhoto routes to bucket or local storage depending on environment.
// Cloud Run sets K_SERVICE; GOOGLE_APPLICATION_CREDENTIALS covers other
// deployments with a service account mounted.
func UploadPhoto(w http.ResponseWriter, r *http.Request) {
	useGCS := os.Getenv("USE_GCS") == "true" ||
		os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" ||
		os.Getenv("K_SERVICE") != ""

	if useGCS {
		UploadPhotoGCS(w, r)
	} else {
		UploadPhotoLocal(w, r)
	}
}
