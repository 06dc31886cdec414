package render

import (
	"context"

	"ai-resume-be/pkg/document"
	"ai-resume-be/pkg/layout"
)

// Artifact is one rendered resume file.
type Artifact struct {
	Format      layout.Target `json:"format"`
	ContentType string        `json:"content_type"`
	Data        []byte        `json:"data"`
}

// Renderer turns a document plus its layout fit into a binary artifact.
type Renderer interface {
	Render(ctx context.Context, doc document.Document, fit layout.Fit) (Artifact, error)
}
