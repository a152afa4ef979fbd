package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/filesearch/internal/core/domain"
	"github.com/custodia-labs/filesearch/internal/core/ports/driven"
	"github.com/custodia-labs/filesearch/internal/logger"
	"github.com/custodia-labs/filesearch/internal/retry"
)

// Ensure Uploader implements the interface.
var _ driven.FileUploader = (*Uploader)(nil)

// UploadPath is the resumable upload endpoint, relative to the base URL.
const UploadPath = "/upload/v1beta/files"

// Resumable upload protocol headers.
const (
	headerUploadProtocol      = "X-Goog-Upload-Protocol"
	headerUploadCommand       = "X-Goog-Upload-Command"
	headerUploadContentLength = "X-Goog-Upload-Header-Content-Length"
	headerUploadContentType   = "X-Goog-Upload-Header-Content-Type"
	headerUploadURL           = "X-Goog-Upload-URL"
	headerUploadOffset        = "X-Goog-Upload-Offset"
)

// Uploader transfers files with the two-phase resumable upload protocol.
type Uploader struct {
	client *Client
}

// NewUploader creates an uploader sharing the client's configuration and pool.
func NewUploader(client *Client) *Uploader {
	return &Uploader{client: client}
}

// uploadSession is the state of one upload attempt.
type uploadSession struct {
	uploadURI     string
	contentLength int64
	mimeType      string
}

// Upload sends file to the upstream file service and returns the created file
// resource. Start and finalize form one retry unit: a failure in either
// restarts from a fresh session.
func (u *Uploader) Upload(ctx context.Context, file domain.FileContent, displayName string) (*domain.UploadedFile, error) {
	if displayName == "" {
		displayName = file.Name
	}
	mimeType := DetectMIMEType(file.Name, file.MIMEType)

	uploaded, err := retry.Do(ctx, u.client.policy, func(ctx context.Context) (*domain.UploadedFile, error) {
		sess, err := u.start(ctx, displayName, file.Size(), mimeType)
		if err != nil {
			return nil, err
		}
		return u.finalize(ctx, sess, file.Data)
	})
	if err != nil {
		logger.Error("upload failed", "file", file.Name, "status", domain.StatusCode(err), "error", err.Error())
		return nil, err
	}

	logger.Info("file uploaded", "file", uploaded.Name, "mime_type", mimeType, "size", file.Size())
	return uploaded, nil
}

// start opens a resumable session.
func (u *Uploader) start(ctx context.Context, displayName string, size int64, mimeType string) (*uploadSession, error) {
	op := http.MethodPost + " " + UploadPath

	payload, err := json.Marshal(map[string]any{
		"file": map[string]string{"displayName": displayName},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal upload metadata: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, u.client.timeoutFor(true))
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.client.baseURL+UploadPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(headerType, jsonType)
	if u.client.apiKey != "" {
		req.Header.Set(headerAPIKey, u.client.apiKey)
	}
	req.Header.Set(headerUploadProtocol, "resumable")
	req.Header.Set(headerUploadCommand, "start")
	req.Header.Set(headerUploadContentLength, strconv.FormatInt(size, 10))
	req.Header.Set(headerUploadContentType, mimeType)

	logger.Debug("upstream request", "op", op, "size", size, "mime_type", mimeType)

	_, header, err := u.client.exchange(req, op)
	if err != nil {
		return nil, err
	}

	uri := header.Get(headerUploadURL)
	if uri == "" {
		return nil, &domain.UpstreamError{
			Kind:    domain.ErrProtocolViolation,
			Op:      op,
			Message: "response is missing the " + headerUploadURL + " header",
		}
	}

	return &uploadSession{uploadURI: uri, contentLength: size, mimeType: mimeType}, nil
}

// finalize sends the whole content and closes the session in one request.
func (u *Uploader) finalize(ctx context.Context, sess *uploadSession, data []byte) (*domain.UploadedFile, error) {
	op := http.MethodPost + " upload session"

	ctx, cancel := context.WithTimeout(ctx, u.client.timeoutFor(true))
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sess.uploadURI, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.ContentLength = sess.contentLength
	req.Header.Set(headerUploadCommand, "upload, finalize")
	req.Header.Set(headerUploadOffset, "0")

	logger.Debug("upstream request", "op", op, "size", sess.contentLength)

	body, _, err := u.client.exchange(req, op)
	if err != nil {
		return nil, err
	}
	raw, err := decodeJSON(op, body)
	if err != nil {
		return nil, err
	}
	return parseUploadedFile(op, raw)
}

// parseUploadedFile accepts {"file": {...}} or a bare file resource.
func parseUploadedFile(op string, raw json.RawMessage) (*domain.UploadedFile, error) {
	resource := gjson.ParseBytes(raw)
	if f := resource.Get("file"); f.IsObject() {
		resource = f
	}

	if !resource.IsObject() || resource.Get("name").String() == "" {
		return nil, &domain.UpstreamError{
			Kind:    domain.ErrInvalidResponseShape,
			Op:      op,
			Message: "upload response has no file name",
			Body:    truncate(string(raw)),
		}
	}

	var file domain.UploadedFile
	if err := json.Unmarshal([]byte(resource.Raw), &file); err != nil {
		return nil, &domain.UpstreamError{
			Kind:    domain.ErrInvalidResponseShape,
			Op:      op,
			Message: "decode upload response",
			Err:     err,
		}
	}
	return &file, nil
}
