package helpers

import (
	"context"
	"net/http"
)

func IsContextDone(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
	}
	return false
}

func GetFileContentType(body []byte) string {
	return http.DetectContentType(body)
}
