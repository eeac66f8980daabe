package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	engine "github.com/markdave123-py/delulu-meter/internal/core/analysis_engine"
	"github.com/markdave123-py/delulu-meter/internal/core/chatlog"
	"github.com/markdave123-py/delulu-meter/internal/core/metrics"
	"github.com/markdave123-py/delulu-meter/internal/models"
	"github.com/markdave123-py/delulu-meter/internal/services"
)

// multipartMemory is how much of a multipart upload is held in memory
// before spilling to temp files.
const multipartMemory = 8 << 20

var errNoFile = errors.New("no file uploaded: send a multipart field named \"file\" or a raw text body")

type AnalysisHandler struct {
	svc *services.AnalysisService
}

func NewAnalysisHandler(svc *services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{svc: svc}
}

// AnalyzeChat accepts a chat export and either returns the metrics bundle
// (sync) or a job id to poll (async).
func (h *AnalysisHandler) AnalyzeChat(w http.ResponseWriter, r *http.Request) {
	mode, err := services.ParseMode(strings.ToLower(r.URL.Query().Get("mode")), h.svc.DefaultMode())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	up, err := readUpload(r)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload too large: limit is %d bytes", maxErr.Limit))
		case errors.Is(err, errNoFile):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid upload: %v", err))
		}
		return
	}

	out, err := h.svc.Analyze(r.Context(), up, mode)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	if out.Mode == services.ModeSync {
		writeJSON(w, http.StatusOK, out.Bundle)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"job_id": out.Job.ID,
		"status": string(out.Job.Status),
	})
}

// GetJob reports the state of an async job. A finished job carries the
// metrics bundle fields next to its status.
func (h *AnalysisHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job, err := h.svc.Job(r.Context(), id)
	if err != nil {
		log.Printf("AnalysisHandler: job lookup %s failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "job lookup failed")
		return
	}

	body, err := jobBody(job)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// jobBody flattens a job into the poll response shape.
func jobBody(job *models.Job) (map[string]any, error) {
	body := map[string]any{}
	if job.Status == models.JobStatusDone && job.Result != nil {
		raw, err := json.Marshal(job.Result)
		if err != nil {
			return nil, fmt.Errorf("encode result: %w", err)
		}
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, fmt.Errorf("encode result: %w", err)
		}
	}
	body["job_id"] = job.ID
	body["status"] = job.Status
	if job.Status == models.JobStatusError {
		body["message"] = job.ErrorMessage
	}
	return body, nil
}

func writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chatlog.ErrNoData):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, engine.ErrQueueFull):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, metrics.ErrMetricFault):
		log.Printf("AnalysisHandler: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		log.Printf("AnalysisHandler: analysis failed: %v", err)
		writeError(w, http.StatusInternalServerError, "analysis failed")
	}
}

// readUpload takes the chat from a multipart "file" field, or from the raw
// body for any other content type.
func readUpload(r *http.Request) (engine.Upload, error) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "multipart/form-data" {
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return engine.Upload{}, err
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return engine.Upload{}, errNoFile
			}
			return engine.Upload{}, err
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return engine.Upload{}, err
		}
		return engine.Upload{
			Data:        data,
			FileName:    filepath.Base(header.Filename),
			ContentType: header.Header.Get("Content-Type"),
		}, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return engine.Upload{}, err
	}
	if len(data) == 0 {
		return engine.Upload{}, errNoFile
	}
	return engine.Upload{Data: data, FileName: "chat.txt", ContentType: r.Header.Get("Content-Type")}, nil
}
