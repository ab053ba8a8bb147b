package handlers

import (
	"context"

	"github.com/amouradore/mouradloader/internal/core/engine"
	"github.com/danielgtaylor/huma/v2"
)

type MediaHandler struct {
	eng engine.Engine
}

func NewMediaHandler(eng engine.Engine) *MediaHandler {
	return &MediaHandler{eng: eng}
}

type InfoInput struct {
	Body struct {
		URL string `json:"url" doc:"Video page URL" required:"true"`
	}
}

type InfoOutput struct {
	Body engine.MediaInfo
}

// Info returns media metadata and the selectable formats without downloading.
func (h *MediaHandler) Info(ctx context.Context, in *InfoInput) (*InfoOutput, error) {
	if in.Body.URL == "" {
		return nil, huma.Error400BadRequest("url is required")
	}

	info, err := h.eng.Info(ctx, in.Body.URL)
	if err != nil {
		return nil, huma.Error500InternalServerError(err.Error())
	}

	return &InfoOutput{Body: *info}, nil
}
