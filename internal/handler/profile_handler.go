package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"fitchat/internal/pkg/errs"
	"fitchat/internal/pkg/logx"
	"fitchat/internal/pkg/req"
	"fitchat/internal/pkg/resp"
)

const (
	// MaxAvatarSize is the maximum allowed avatar upload size in bytes (2 MB).
	MaxAvatarSize = 2 * 1024 * 1024

	// presignedURLDuration is how long a generated URL stays valid.
	presignedURLDuration = 5 * time.Minute
)

// allowedAvatarMIMETypes defines the permitted avatar image types.
var allowedAvatarMIMETypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// PresignAvatarInput is the JSON body of POST /profile/avatar/presign.
type PresignAvatarInput struct {
	MimeType string `json:"mimeType" validate:"required"`
	FileSize int64  `json:"fileSize" validate:"required,gt=0"`
}

// HandlePresignAvatar generates a presigned upload URL for the caller's avatar.
// The object key is derived from the caller identity, so an actor can only ever
// overwrite its own avatar.
func HandlePresignAvatar(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, authErr := callerRef(r)
		if authErr != nil {
			resp.RespondError(w, r, authErr)
			return
		}

		var input PresignAvatarInput
		if customErr := req.BindJSON(r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		ext, ok := allowedAvatarMIMETypes[input.MimeType]
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrAvatarTypeInvalid))
			return
		}

		if input.FileSize > MaxAvatarSize {
			resp.RespondError(w, r, errs.NewError(errs.ErrAvatarTooLarge))
			return
		}

		key := fmt.Sprintf("avatars/%s/%s%s", caller.Kind, caller.ID, ext)

		uploadURL, err := deps.Storage.PresignUpload(r.Context(), key, input.MimeType, input.FileSize, presignedURLDuration)
		if err != nil {
			logx.Error(err, "Failed to presign avatar upload", "key", key)
			resp.RespondError(w, r, errs.NewError(errs.ErrStorageService))
			return
		}

		resp.RespondOK(w, r, map[string]any{
			"uploadUrl": uploadURL,
			"key":       key,
		})
	}
}

// HandleAvatarURL resolves an avatar key into a short-lived download URL.
// Only keys under the avatars/ prefix can be resolved.
func HandleAvatarURL(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, authErr := callerRef(r); authErr != nil {
			resp.RespondError(w, r, authErr)
			return
		}

		key := r.URL.Query().Get("key")
		if key == "" || !strings.HasPrefix(key, "avatars/") || filepath.Clean(key) != key {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		downloadURL, err := deps.Storage.PresignDownload(r.Context(), key, presignedURLDuration)
		if err != nil {
			logx.Error(err, "Failed to presign avatar download", "key", key)
			resp.RespondError(w, r, errs.NewError(errs.ErrStorageService))
			return
		}

		resp.RespondOK(w, r, map[string]any{
			"url": downloadURL,
		})
	}
}
