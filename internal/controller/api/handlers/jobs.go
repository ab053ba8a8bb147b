package handlers

import (
	"context"
	"errors"

	"github.com/amouradore/mouradloader/internal/core/engine"
	"github.com/amouradore/mouradloader/internal/core/job"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
)

type JobsHandler struct {
	mgr *job.Manager
}

func NewJobsHandler(mgr *job.Manager) *JobsHandler {
	return &JobsHandler{mgr: mgr}
}

type CreateJobInput struct {
	Body struct {
		URL      string `json:"url" doc:"Video page URL" required:"true"`
		FormatID string `json:"format_id,omitempty" doc:"Format selector; empty or \"best\" picks the best combined quality"`
		Kind     string `json:"kind,omitempty" enum:"video,audio" doc:"Download the video or extract audio"`
	}
}

type CreateJobOutput struct {
	Body struct {
		JobID string `json:"job_id"`
	}
}

// Create starts a background download and returns its job id immediately.
func (h *JobsHandler) Create(ctx context.Context, in *CreateJobInput) (*CreateJobOutput, error) {
	id, err := h.mgr.Start(in.Body.URL, in.Body.FormatID, engine.MediaKind(in.Body.Kind))
	if err != nil {
		if errors.Is(err, job.ErrMissingURL) {
			return nil, huma.Error400BadRequest(err.Error())
		}
		return nil, huma.Error500InternalServerError(err.Error())
	}

	out := &CreateJobOutput{}
	out.Body.JobID = id
	return out, nil
}

type ResultInput struct {
	ID string `path:"id" doc:"Job id"`
}

type ResultOutput struct {
	Body struct {
		Success  bool   `json:"success"`
		FileName string `json:"filename,omitempty"`
		Error    string `json:"error,omitempty"`
	}
}

// Result returns the terminal outcome of a job. Reading consumes the record:
// a second request for the same id gets a 404.
func (h *JobsHandler) Result(_ context.Context, in *ResultInput) (*ResultOutput, error) {
	res, ok := h.mgr.ConsumeResult(in.ID)
	if !ok {
		return nil, huma.Error404NotFound("no result for this job")
	}

	out := &ResultOutput{}
	out.Body.Success = res.Success
	out.Body.FileName = res.FileName
	out.Body.Error = res.Error
	return out, nil
}

type StreamInput struct {
	ID string `path:"id" doc:"Job id"`
}

// Stream pushes progress snapshots over SSE until the job reaches a terminal
// state (plus the watcher's grace period) or the client disconnects.
func (h *JobsHandler) Stream(ctx context.Context, in *StreamInput, send sse.Sender) {
	for snap := range h.mgr.Watch(ctx, in.ID) {
		if err := send.Data(snap); err != nil {
			return
		}
	}
}
