package collaborator

import (
	"context"
	"encoding/base64"

	"github.com/Eloy96/impresiones-prueba/internal/domain"
	"github.com/Eloy96/impresiones-prueba/pkg/errors"
)

// UploadClient wraps the uploadFile exchange
type UploadClient struct {
	client *Client
}

// NewUploadClient creates an upload client over a shared collaborator client
func NewUploadClient(client *Client) *UploadClient {
	return &UploadClient{client: client}
}

type uploadRequest struct {
	Action     string `json:"action"`
	FileBase64 string `json:"fileBase64"`
	FileType   string `json:"fileType"`
	FileName   string `json:"fileName"`
}

type uploadResponse struct {
	FileID   string `json:"fileId"`
	FileName string `json:"fileName"`
}

// Upload sends a document to remote storage and returns its durable
// handle. Failures after retry exhaustion are surfaced as ErrUpload.
// Size limits are enforced by the caller before any attempt is made.
func (u *UploadClient) Upload(ctx context.Context, file domain.FileUpload) (domain.FileHandle, error) {
	req := uploadRequest{
		Action:     "uploadFile",
		FileBase64: base64.StdEncoding.EncodeToString(file.Data),
		FileType:   file.Type,
		FileName:   file.Name,
	}

	var resp uploadResponse
	if err := u.client.doAction(ctx, "uploadFile", req, &resp); err != nil {
		return domain.FileHandle{}, &errors.ErrUpload{FileName: file.Name, Err: err}
	}

	name := resp.FileName
	if name == "" {
		name = file.Name
	}
	return domain.FileHandle{
		FileID:   resp.FileID,
		FileName: name,
	}, nil
}
