package interfaces

import (
	"context"
	"io"
)

// MediaUploader pushes binary image content to the hosted media service and
// returns a durable remote URL. Implementations sign the request with the
// service credentials; callers never see the signing material.
type MediaUploader interface {
	Upload(ctx context.Context, req MediaUploadRequest) (*MediaUploadResult, error)
}

// MediaUploadRequest carries one image destined for remote storage. Name is
// advisory (the service may rename); Folder selects the destination folder
// the signature covers.
type MediaUploadRequest struct {
	Content  io.Reader
	Name     string
	MimeType string
	Folder   string
}

// MediaUploadResult reports the durable location of an uploaded asset.
type MediaUploadResult struct {
	URL      string
	PublicID string
	Bytes    int64
}

// MediaSource opens a pending local media reference so it can be uploaded.
// The default implementation reads from the local filesystem; hosts with
// other device storage plug in their own.
type MediaSource interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}
