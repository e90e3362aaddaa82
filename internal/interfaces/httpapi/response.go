package httpapi

import (
	"bytes"
	"context"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
)

const (
	headerContentType = "Content-Type"
	headerAllowOrigin = "Access-Control-Allow-Origin"

	msgPlayerNotFound   = "Player not found"
	msgMethodNotAllowed = "Method not allowed"
)

type errorBody struct {
	Error string `json:"error"`
}

func jsonResponse(ctx context.Context, status int, payload any) (Response, error) {
	_, span := startSpan(ctx, "httpapi.jsonResponse")
	defer span.End()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		return Response{}, err
	}

	return Response{
		StatusCode: status,
		Headers: map[string]string{
			headerContentType: "application/json",
			headerAllowOrigin: "*",
		},
		Body: string(bytes.TrimRight(buf.B, "\n")),
	}, nil
}

func errorResponse(ctx context.Context, status int, msg string) (Response, error) {
	return jsonResponse(ctx, status, errorBody{Error: msg})
}

// preflightResponse answers CORS preflight without touching the store.
func preflightResponse() Response {
	return Response{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			headerAllowOrigin:              "*",
			"Access-Control-Allow-Methods": "GET, POST, PUT, OPTIONS",
			"Access-Control-Allow-Headers": "Content-Type, X-User-Id",
			"Access-Control-Max-Age":       "86400",
		},
		Body: "",
	}
}
