package httpapi

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// HandleAPIGateway adapts an API Gateway proxy event to Invoke. Each event
// gets a server span, the root of the invocation trace.
func (h *Handler) HandleAPIGateway(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "lambda "+event.HTTPMethod,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.request.method", event.HTTPMethod),
			attribute.String("faas.trigger", "http"),
			attribute.String("aws.request_id", event.RequestContext.RequestID),
		),
	)
	defer span.End()

	req, err := requestFromAPIGateway(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode event")
		return events.APIGatewayProxyResponse{}, err
	}

	resp, err := h.Invoke(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unhandled failure")
		return events.APIGatewayProxyResponse{}, err
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}, nil
}

func requestFromAPIGateway(event events.APIGatewayProxyRequest) (Request, error) {
	body := event.Body
	if event.IsBase64Encoded && body != "" {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return Request{}, fmt.Errorf("decode base64 body: %w", err)
		}
		body = string(decoded)
	}

	return Request{
		Method:  event.HTTPMethod,
		Query:   event.QueryStringParameters,
		Body:    body,
		Headers: event.Headers,
	}, nil
}
