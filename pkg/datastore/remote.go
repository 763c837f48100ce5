package datastore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/apperrors"
)

// envelope mirrors the server's response wrapper.
type envelope[T any] struct {
	Data  T `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type authPayload struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// remoteClient talks to the hosted API. Every method classifies
// transport failures as apperrors.ErrRemoteUnavailable so the facade
// can decide whether to degrade.
type remoteClient struct {
	http        *resty.Client
	authTimeout time.Duration
}

func newRemoteClient(baseURL string, authTimeout time.Duration) *remoteClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json")
	return &remoteClient{http: client, authTimeout: authTimeout}
}

func (r *remoteClient) setToken(token string) {
	r.http.SetAuthToken(token)
}

// auth posts to the auth endpoint. The flow carries its own timeout;
// exceeding it surfaces as ErrRequestTimedOut so the UI can say
// "took too long" instead of hanging.
func (r *remoteClient) auth(ctx context.Context, body map[string]interface{}) (*authPayload, error) {
	ctx, cancel := context.WithTimeout(ctx, r.authTimeout)
	defer cancel()

	var out envelope[*authPayload]
	resp, err := r.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post("/api/auth")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apperrors.ErrRequestTimedOut
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	if err := classify(resp); err != nil {
		return nil, err
	}
	if out.Data == nil || out.Data.User == nil {
		return nil, fmt.Errorf("%w: empty auth response", apperrors.ErrRemoteUnavailable)
	}
	return out.Data, nil
}

func (r *remoteClient) items(ctx context.Context, all bool) ([]*models.Item, error) {
	var out envelope[[]*models.Item]
	resp, err := r.http.R().
		SetContext(ctx).
		SetQueryParam("all", fmt.Sprintf("%t", all)).
		SetResult(&out).
		Get("/api/items")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	if err := classify(resp); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (r *remoteClient) saveItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	var out envelope[*models.Item]
	resp, err := r.http.R().
		SetContext(ctx).
		SetBody(item).
		SetResult(&out).
		Post("/api/items")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	if err := classify(resp); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (r *remoteClient) updateItem(ctx context.Context, id string, fields map[string]interface{}) (*models.Item, error) {
	body := map[string]interface{}{"itemId": id}
	for k, v := range fields {
		body[k] = v
	}

	var out envelope[*models.Item]
	resp, err := r.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Put("/api/items")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	if err := classify(resp); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (r *remoteClient) verifyItem(ctx context.Context, id string, verified bool) (*models.Item, error) {
	var out envelope[*models.Item]
	resp, err := r.http.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{"itemId": id, "isVerified": verified}).
		SetResult(&out).
		Patch("/api/items")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	if err := classify(resp); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (r *remoteClient) deleteItem(ctx context.Context, id string) error {
	resp, err := r.http.R().
		SetContext(ctx).
		SetQueryParam("itemId", id).
		Delete("/api/items")
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	return classify(resp)
}

func (r *remoteClient) messages(ctx context.Context, userID string) ([]*models.Message, error) {
	var out envelope[[]*models.Message]
	resp, err := r.http.R().
		SetContext(ctx).
		SetQueryParam("userId", userID).
		SetResult(&out).
		Get("/api/messages")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	if err := classify(resp); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (r *remoteClient) sendMessage(ctx context.Context, msg *models.Message) (*models.Message, error) {
	var out envelope[*models.Message]
	resp, err := r.http.R().
		SetContext(ctx).
		SetBody(msg).
		SetResult(&out).
		Post("/api/messages")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	if err := classify(resp); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (r *remoteClient) users(ctx context.Context) ([]*models.User, error) {
	var out envelope[[]*models.User]
	resp, err := r.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/users")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteUnavailable, err)
	}
	if err := classify(resp); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// classify maps an HTTP status onto the error taxonomy. Validation,
// auth and not-found responses carry meaning and must propagate;
// server errors count as the remote being unavailable.
func classify(resp *resty.Response) error {
	switch {
	case resp.StatusCode() < 400:
		return nil
	case resp.StatusCode() == http.StatusNotFound:
		return apperrors.ErrResourceNotFound
	case resp.StatusCode() == http.StatusConflict:
		return apperrors.ErrEmailAlreadyExists
	case resp.StatusCode() == http.StatusUnauthorized, resp.StatusCode() == http.StatusForbidden:
		return apperrors.ErrPermissionDenied
	case resp.StatusCode() == http.StatusTooManyRequests:
		return fmt.Errorf("%w: rate limited", apperrors.ErrRemoteUnavailable)
	case resp.StatusCode() >= 500:
		return fmt.Errorf("%w: status %d", apperrors.ErrRemoteUnavailable, resp.StatusCode())
	default:
		return fmt.Errorf("%w: status %d", apperrors.ErrValidationFailed, resp.StatusCode())
	}
}
