package profile

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/skillsync/internal/application/service"
	"github.com/khoahotran/skillsync/internal/domain/profile"
	"github.com/khoahotran/skillsync/pkg/apperror"
)

const MaxPhotoBytes = 5 << 20

type UploadPhotoInput struct {
	SessionID uuid.UUID
	File      io.Reader
	Filename  string
}

// ExecuteUploadPhoto validates the image, hosts it when an uploader is
// configured (inline data URI otherwise) and stores the resulting reference.
// Storing the reference is the last step.
func (uc *ProfileUseCase) ExecuteUploadPhoto(ctx context.Context, input UploadPhotoInput) (*DashboardOutput, error) {
	data, err := io.ReadAll(io.LimitReader(input.File, MaxPhotoBytes+1))
	if err != nil {
		return nil, apperror.NewInvalidInput("failed to read photo", err)
	}
	if len(data) == 0 {
		return nil, apperror.NewInvalidInput("photo is empty", nil)
	}
	if len(data) > MaxPhotoBytes {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("photo exceeds %d bytes", MaxPhotoBytes), nil)
	}

	mediaType := strings.TrimSpace(strings.SplitN(mimetype.Detect(data).String(), ";", 2)[0])
	if !strings.HasPrefix(mediaType, "image/") {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("'%s' is not an image (%s)", input.Filename, mediaType), nil)
	}

	photo, err := uc.storePhoto(ctx, input.SessionID, data, mediaType)
	if err != nil {
		return nil, err
	}

	return uc.mutate(ctx, "upload_photo", input.SessionID, func(ctx context.Context, b *profile.Builder) (mutation, error) {
		return mutation{applied: true, event: service.EventPhotoUpdated, subject: mediaType}, b.SetPhoto(ctx, photo)
	})
}

func (uc *ProfileUseCase) storePhoto(ctx context.Context, sessionID uuid.UUID, data []byte, mediaType string) (string, error) {
	if uc.uploader == nil {
		return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
	}

	folder := fmt.Sprintf("skillsync/sessions/%s", sessionID.String())
	url, err := uc.uploader.Upload(ctx, bytes.NewReader(data), folder, "photo")
	if err != nil {
		return "", apperror.NewInternal("failed to upload photo", err)
	}
	uc.logger.Info("Photo uploaded", zap.String("session_id", sessionID.String()), zap.String("url", url))
	return url, nil
}
