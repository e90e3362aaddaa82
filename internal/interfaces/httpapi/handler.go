package httpapi

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/samber/mo"

	"github.com/riskibarqy/tycoon-player-api/internal/domain/player"
	"github.com/riskibarqy/tycoon-player-api/internal/platform/logging"
	"github.com/riskibarqy/tycoon-player-api/internal/usecase"
)

const headerCallerID = "X-User-Id"

// PlayerService is the use case surface the handler dispatches to.
type PlayerService interface {
	GetProfile(ctx context.Context, username string) (player.Profile, error)
	Leaderboard(ctx context.Context) ([]player.Ranked, error)
	Register(ctx context.Context, username string) (player.Player, error)
	Update(ctx context.Context, username string, upd player.Update) (player.Player, error)
}

type Handler struct {
	players   PlayerService
	logger    *logging.Logger
	validator *validator.Validate
	metrics   *Metrics
}

type HandlerOption func(*Handler)

// WithMetrics records every invocation on m.
func WithMetrics(m *Metrics) HandlerOption {
	return func(h *Handler) {
		h.metrics = m
	}
}

func NewHandler(players PlayerService, logger *logging.Logger, opts ...HandlerOption) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	h := &Handler{
		players:   players,
		logger:    logger,
		validator: validator.New(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Invoke runs one request to completion. A returned error is an unhandled
// failure: no response body is produced for it.
func (h *Handler) Invoke(ctx context.Context, req Request) (Response, error) {
	ctx, span := startSpan(ctx, "httpapi.Handler.Invoke")
	defer span.End()

	started := time.Now()
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	resp, err := h.dispatch(ctx, method, req)
	took := time.Since(started)
	if err != nil {
		h.metrics.observeUnhandled(methodLabel(method), took)
		h.logger.ErrorContext(ctx, "invocation failed",
			"method", method,
			"caller_id", req.Header(headerCallerID),
			"duration_ms", took.Milliseconds(),
			"error", err,
		)
		return Response{}, err
	}

	h.metrics.observe(methodLabel(method), resp.StatusCode, took)
	h.logger.InfoContext(ctx, "invocation handled",
		"method", method,
		"status", resp.StatusCode,
		"caller_id", req.Header(headerCallerID),
		"duration_ms", took.Milliseconds(),
	)
	return resp, nil
}

// dispatch matches the method exactly; lowercase verbs are not recognised.
func (h *Handler) dispatch(ctx context.Context, method string, req Request) (Response, error) {
	switch method {
	case http.MethodOptions:
		return preflightResponse(), nil
	case http.MethodGet:
		return h.Get(ctx, req)
	case http.MethodPost:
		return h.Register(ctx, req)
	case http.MethodPut:
		return h.Update(ctx, req)
	default:
		return errorResponse(ctx, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	}
}

// Get returns one profile when username is set, otherwise the leaderboard.
func (h *Handler) Get(ctx context.Context, req Request) (Response, error) {
	ctx, span := startSpan(ctx, "httpapi.Handler.Get")
	defer span.End()

	username := req.QueryParam("username")
	if username == "" {
		ranked, err := h.players.Leaderboard(ctx)
		if err != nil {
			return Response{}, err
		}
		return jsonResponse(ctx, http.StatusOK, leaderboardResponse{Players: toRankedDTOs(ranked)})
	}

	profile, err := h.players.GetProfile(ctx, username)
	if errors.Is(err, usecase.ErrNotFound) {
		return errorResponse(ctx, http.StatusNotFound, msgPlayerNotFound)
	}
	if err != nil {
		return Response{}, err
	}
	return jsonResponse(ctx, http.StatusOK, toProfileResponse(profile))
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
}

// Register creates the player if absent and returns the stored row.
func (h *Handler) Register(ctx context.Context, req Request) (Response, error) {
	ctx, span := startSpan(ctx, "httpapi.Handler.Register")
	defer span.End()

	var body registerRequest
	if err := decodeBody(req.Body, &body); err != nil {
		return Response{}, err
	}
	if err := h.validateRequest(ctx, body); err != nil {
		return Response{}, err
	}

	p, err := h.players.Register(ctx, body.Username)
	if err != nil {
		return Response{}, err
	}
	return jsonResponse(ctx, http.StatusOK, playerResponse{Player: toPlayerDTO(p)})
}

type updateRequest struct {
	Username     string            `json:"username"`
	Balance      *int64            `json:"balance"`
	DonatBalance *int64            `json:"donat_balance"`
	Status       *string           `json:"status"`
	IsAdmin      *bool             `json:"is_admin"`
	TotalClicks  *int64            `json:"total_clicks"`
	Businesses   map[string]*int64 `json:"businesses"`
	Cars         map[string]*int64 `json:"cars"`
	Houses       map[string]*int64 `json:"houses"`
}

// Update applies a partial change. An unknown or missing username is a 404.
func (h *Handler) Update(ctx context.Context, req Request) (Response, error) {
	ctx, span := startSpan(ctx, "httpapi.Handler.Update")
	defer span.End()

	var body updateRequest
	if err := decodeBody(req.Body, &body); err != nil {
		return Response{}, err
	}
	if body.Username == "" {
		return errorResponse(ctx, http.StatusNotFound, msgPlayerNotFound)
	}

	upd, err := body.toUpdate()
	if err != nil {
		return Response{}, err
	}

	p, err := h.players.Update(ctx, body.Username, upd)
	if errors.Is(err, usecase.ErrNotFound) {
		return errorResponse(ctx, http.StatusNotFound, msgPlayerNotFound)
	}
	if err != nil {
		return Response{}, err
	}
	return jsonResponse(ctx, http.StatusOK, playerResponse{Player: toPlayerDTO(p)})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// decodeBody treats an absent body as an empty object.
func decodeBody(raw string, dst any) error {
	if strings.TrimSpace(raw) == "" {
		raw = "{}"
	}
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(raw, dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (r updateRequest) toUpdate() (player.Update, error) {
	upd := player.Update{
		Balance:      mo.PointerToOption(r.Balance),
		DonatBalance: mo.PointerToOption(r.DonatBalance),
		Status:       mo.PointerToOption(r.Status),
		IsAdmin:      mo.PointerToOption(r.IsAdmin),
		TotalClicks:  mo.PointerToOption(r.TotalClicks),
	}

	var err error
	if upd.Businesses, err = assetChanges(player.AssetBusiness, r.Businesses); err != nil {
		return player.Update{}, err
	}
	if upd.Cars, err = assetChanges(player.AssetCar, r.Cars); err != nil {
		return player.Update{}, err
	}
	if upd.Houses, err = assetChanges(player.AssetHouse, r.Houses); err != nil {
		return player.Update{}, err
	}
	return upd, nil
}

// assetChanges parses the type-id keys and orders the changes by type. A
// null count or two keys naming the same type reject the whole update.
func assetChanges(kind player.AssetKind, counts map[string]*int64) ([]player.AssetChange, error) {
	if len(counts) == 0 {
		return nil, nil
	}

	out := make([]player.AssetChange, 0, len(counts))
	seen := make(map[int64]string, len(counts))
	for key, count := range counts {
		assetType, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s type %q is not an integer", usecase.ErrInvalidInput, kind, key)
		}
		if count == nil {
			return nil, fmt.Errorf("%w: %s type %q has a null count", usecase.ErrInvalidInput, kind, key)
		}
		if prev, dup := seen[assetType]; dup {
			return nil, fmt.Errorf("%w: %s keys %q and %q name the same type", usecase.ErrInvalidInput, kind, prev, key)
		}
		seen[assetType] = key
		out = append(out, player.AssetChange{Type: assetType, Count: *count})
	}
	slices.SortFunc(out, func(a, b player.AssetChange) int {
		return cmp.Compare(a.Type, b.Type)
	})
	return out, nil
}

func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions:
		return method
	default:
		return "OTHER"
	}
}
