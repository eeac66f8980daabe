package analysis_engine

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime"
	"strings"

	"code.sajari.com/docconv"

	"github.com/markdave123-py/delulu-meter/internal/core"
	"github.com/markdave123-py/delulu-meter/internal/core/chatlog"
)

var _ core.TextExtractor = (*DocconvExtractor)(nil)

// DocconvExtractor implements core.TextExtractor using sajari/docconv, for
// chats that were saved as PDF, Word or HTML documents.
type DocconvExtractor struct {
	useReadability bool
}

func NewDocconvExtractor(useReadability bool) *DocconvExtractor {
	return &DocconvExtractor{useReadability: useReadability}
}

// ExtractText converts the document according to its content type.
func (e *DocconvExtractor) ExtractText(ctx context.Context, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	res, err := docconv.Convert(bytes.NewReader(data), contentType, e.useReadability)
	if err != nil {
		return "", fmt.Errorf("docconv: extraction failed for content type %q: %w", contentType, err)
	}
	return res.Body, nil
}

// isPlainText reports whether an upload can be decoded directly.
func isPlainText(contentType string) bool {
	if contentType == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return true
	}
	return mt == "text/plain" || mt == "application/octet-stream"
}

// decodeUpload returns the upload as text. Documents go through the
// extractor; if that fails the bytes are decoded as lossy UTF-8 instead.
func (e *Engine) decodeUpload(ctx context.Context, up Upload) string {
	if e.extractor == nil || isPlainText(up.ContentType) {
		return chatlog.DecodeLossy(up.Data)
	}
	text, err := e.extractor.ExtractText(ctx, up.Data, up.ContentType)
	if err != nil || strings.TrimSpace(text) == "" {
		log.Printf("AnalysisEngine: falling back to plain decoding for %q: %v", up.ContentType, err)
		return chatlog.DecodeLossy(up.Data)
	}
	return chatlog.DecodeLossy([]byte(text))
}
