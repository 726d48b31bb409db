package api

import (
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/sirupsen/logrus"

	"microblog/internal/service"
)

var allowedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// POSTMediaHandler accepts a multipart "file" part, stores the payload and
// registers it as an unattached media row.
func (api *API) POSTMediaHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := api.services.Identity.Resolve(r.Context(), apiKey(r)); err != nil {
		api.fail(w, r, "upload_media", err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, api.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(api.opts.MaxUploadBytes); err != nil {
		api.fail(w, r, "upload_media", service.BadRequest("Invalid multipart body"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		api.fail(w, r, "upload_media", service.BadRequest("file is required"))
		return
	}
	defer file.Close()

	contentType, _, err := mime.ParseMediaType(header.Header.Get("Content-Type"))
	if err != nil || !allowedMediaTypes[contentType] {
		api.fail(w, r, "upload_media", service.ErrBadFile)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		api.fail(w, r, "upload_media", fmt.Errorf("failed to read upload: %w", err))
		return
	}

	ref, err := api.blobs.Put(r.Context(), header.Filename, contentType, data)
	if err != nil {
		api.fail(w, r, "upload_media", err)
		return
	}
	mediaID, err := api.services.Media.Register(r.Context(), ref)
	if err != nil {
		api.logger.WithError(err).WithField("ref", ref).Error("Stored media could not be registered")
		api.fail(w, r, "upload_media", err)
		return
	}

	api.logger.WithFields(logrus.Fields{
		"media_id": mediaID,
		"ref":      ref,
		"size":     len(data),
	}).Info("Media uploaded")
	api.metrics.MediaUploaded.WithLabelValues("upload_media").Inc()
	api.ok(w, "upload_media", map[string]interface{}{"media_id": mediaID})
}
