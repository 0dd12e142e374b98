package utils

import (
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/dto/requests"
	"errors"
	"mime/multipart"
	"net/http"
	"path"
	"strconv"
	"strings"
)

var allowedImageExtensions = map[string]string{
	".jpg":  constvars.MIMEImageJPEG,
	".jpeg": constvars.MIMEImageJPEG,
	".png":  constvars.MIMEImagePNG,
}

func BuildPaginationRequest(r *http.Request) requests.Pagination {
	page, err := strconv.Atoi(r.URL.Query().Get(constvars.URLQueryParamPage))
	if err != nil || page <= 0 {
		page = constvars.DefaultPage
	}

	pageSize, err := strconv.Atoi(r.URL.Query().Get(constvars.URLQueryParamPageSize))
	if err != nil || pageSize <= 0 {
		pageSize = constvars.DefaultPageSize
	}
	if pageSize > constvars.MaxPageSize {
		pageSize = constvars.MaxPageSize
	}

	return requests.Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

func ValidateUrlParam(param string) error {
	if strings.TrimSpace(param) == "" {
		return errors.New("parameter is missing from url path")
	}
	return nil
}

// ValidateImage checks size and extension of an uploaded image and returns
// its content type.
func ValidateImage(fileHeader *multipart.FileHeader, maxSizeInBytes int64) (string, error) {
	if fileHeader == nil {
		return "", errors.New("file is missing")
	}

	if fileHeader.Size > maxSizeInBytes {
		return "", errors.New("file size exceeds the maximum limit")
	}

	contentType, ok := allowedImageExtensions[strings.ToLower(path.Ext(fileHeader.Filename))]
	if !ok {
		return "", errors.New("invalid file format")
	}
	return contentType, nil
}
