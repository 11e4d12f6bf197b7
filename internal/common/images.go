package common

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/nfnt/resize"
	"github.com/socialnet-labs/backend/pkg/crypto"
	"github.com/socialnet-labs/backend/pkg/errorx"
	"github.com/socialnet-labs/backend/pkg/storage"
	"github.com/socialnet-labs/backend/pkg/xcontext"
)

const MediaBucket = "media"

type thumbnailSize struct {
	w int
	h int
}

var ThumbnailSizes = []thumbnailSize{
	{w: 256, h: 256},
}

type ProcessedUpload struct {
	Original   *storage.UploadResponse
	Thumbnails []*storage.UploadResponse
	Mime       string
	Size       int64
	FileName   string
}

// ProcessUpload reads the uploaded file from the multipart form, stores the
// original, and for images also stores resized thumbnails.
func ProcessUpload(ctx context.Context, fileStorage storage.Storage, key string) (*ProcessedUpload, error) {
	req := xcontext.HTTPRequest(ctx)
	if err := req.ParseMultipartForm(xcontext.Configs(ctx).File.MaxSize); err != nil {
		return nil, errorx.New(errorx.BadRequest, "Request must be multipart form")
	}

	file, header, err := req.FormFile(key)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Error retrieving the file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read the uploaded file: %v", err)
		return nil, errorx.Unknown
	}

	// Stored names get a random prefix so two uploads of the same file
	// cannot overwrite each other.
	storedName := fmt.Sprintf("%s-%s", crypto.GenerateRandomAlphabet(9), header.Filename)

	mime := header.Header.Get("Content-Type")
	original, err := fileStorage.Upload(ctx, &storage.UploadObject{
		Bucket:   MediaBucket,
		Prefix:   "uploads",
		FileName: storedName,
		Mime:     mime,
		Data:     data,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload file: %v", err)
		return nil, errorx.Unknown
	}

	result := &ProcessedUpload{
		Original: original,
		Mime:     mime,
		Size:     header.Size,
		FileName: header.Filename,
	}

	img, err := decodeImg(mime, bytes.NewReader(data))
	if err != nil {
		// Not an image, no thumbnails.
		return result, nil
	}

	objs := make([]*storage.UploadObject, 0, len(ThumbnailSizes))
	for _, size := range ThumbnailSizes {
		resized := resize.Thumbnail(uint(size.w), uint(size.h), img, resize.Lanczos2)
		b, err := encodeImg(mime, resized)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot encode thumbnail: %v", err)
			return nil, errorx.Unknown
		}

		objs = append(objs, &storage.UploadObject{
			Bucket:   MediaBucket,
			Prefix:   "thumbnails",
			FileName: fmt.Sprintf("%dx%d-%s", size.w, size.h, storedName),
			Mime:     mime,
			Data:     b,
		})
	}

	thumbnails, err := fileStorage.BulkUpload(ctx, objs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload thumbnails: %v", err)
		return nil, errorx.Unknown
	}

	result.Thumbnails = thumbnails
	return result, nil
}

func decodeImg(mime string, data io.Reader) (img image.Image, err error) {
	switch mime {
	case "image/jpeg":
		img, err = jpeg.Decode(data)
	case "image/png":
		img, err = png.Decode(data)
	case "image/gif":
		img, err = gif.Decode(data)
	default:
		return nil, fmt.Errorf("unsupported image mime %s", mime)
	}
	return img, err
}

func encodeImg(mime string, img image.Image) (b []byte, err error) {
	buf := new(bytes.Buffer)

	switch mime {
	case "image/jpeg":
		err = jpeg.Encode(buf, img, nil)
	case "image/png":
		err = png.Encode(buf, img)
	case "image/gif":
		err = gif.Encode(buf, img, nil)
	default:
		return nil, fmt.Errorf("unsupported image mime %s", mime)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), err
}
