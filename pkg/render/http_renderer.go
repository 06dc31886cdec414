package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-resume-be/pkg/document"
	"ai-resume-be/pkg/layout"
)

// HTTPRenderer calls the external render service. The service takes the
// markdown plus the fitted typography and returns the binary file.
type HTTPRenderer struct {
	BaseURL string
	Client  *http.Client
}

var _ Renderer = &HTTPRenderer{}

func NewHTTPRenderer(baseURL string) *HTTPRenderer {
	return &HTTPRenderer{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type renderRequest struct {
	Markdown string     `json:"markdown"`
	Fit      layout.Fit `json:"fit"`
}

var contentTypes = map[layout.Target]string{
	layout.TargetPDF:  "application/pdf",
	layout.TargetDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

func (r *HTTPRenderer) Render(ctx context.Context, doc document.Document, fit layout.Fit) (Artifact, error) {
	contentType, ok := contentTypes[fit.Target]
	if !ok {
		return Artifact{}, fmt.Errorf("unsupported render target %q", fit.Target)
	}

	payloadBytes, err := json.Marshal(renderRequest{Markdown: doc.Text(), Fit: fit})
	if err != nil {
		return Artifact{}, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/render/%s", r.BaseURL, fit.Target)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return Artifact{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return Artifact{}, fmt.Errorf("render request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return Artifact{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Artifact{}, fmt.Errorf("render error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	return Artifact{
		Format:      fit.Target,
		ContentType: contentType,
		Data:        bodyBytes,
	}, nil
}
