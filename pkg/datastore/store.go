// Package datastore is the client-side persistence facade: one CRUD
// contract over the hosted API with a transparent local fallback.
// Reads degrade silently to the mirror when the remote is down;
// validation and authentication failures always propagate.
package datastore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/app/models"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/apperrors"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/logger"
	"github.com/dashent96-lang/AAU-FOUNT-IT-sponsored-by-rozzel/internal/pkg/normalize"
)

// DefaultAuthTimeout bounds the signup/login round trip. Other
// operations run with whatever deadline the caller's context carries.
const DefaultAuthTimeout = 8 * time.Second

// Options configures a Store.
type Options struct {
	// BaseURL is the root of the hosted API, e.g. http://localhost:8080.
	BaseURL string
	// MirrorDir is the directory holding the local fallback files.
	MirrorDir string
	// AuthTimeout bounds signup/login; zero means DefaultAuthTimeout.
	AuthTimeout time.Duration
	// Logger defaults to the package logger when zero.
	Logger *zerolog.Logger
}

// Store is the persistence facade. The session lives on the instance,
// not in package state, so two stores never share a login.
type Store struct {
	remote *remoteClient
	mirror *Mirror
	log    zerolog.Logger

	mu      sync.Mutex
	session *models.User
	token   string
}

// New builds a Store and restores any persisted session.
func New(opts Options) (*Store, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", apperrors.ErrValidationFailed)
	}
	if opts.MirrorDir == "" {
		return nil, fmt.Errorf("%w: mirror directory is required", apperrors.ErrValidationFailed)
	}
	if opts.AuthTimeout <= 0 {
		opts.AuthTimeout = DefaultAuthTimeout
	}

	mirror, err := NewMirror(opts.MirrorDir)
	if err != nil {
		return nil, err
	}

	lg := logger.WithField("component", "datastore")
	if opts.Logger != nil {
		lg = *opts.Logger
	}

	s := &Store{
		remote: newRemoteClient(opts.BaseURL, opts.AuthTimeout),
		mirror: mirror,
		log:    lg,
	}

	if session, err := mirror.Session(); err == nil && session != nil {
		s.session = session
	}

	return s, nil
}

// Signup registers (or re-joins) an account and establishes the
// session. Signing up with a known email returns the existing account.
func (s *Store) Signup(ctx context.Context, name, email string) (*models.User, Tier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, TierRemote, fmt.Errorf("%w: name is required", apperrors.ErrValidationFailed)
	}
	email = normalize.Email(email)
	if email == "" {
		return nil, TierRemote, fmt.Errorf("%w: email is required", apperrors.ErrValidationFailed)
	}

	payload, err := s.remote.auth(ctx, map[string]interface{}{
		"action": "signup",
		"name":   strings.TrimSpace(name),
		"email":  email,
	})
	if err == nil {
		s.establishSession(payload.User, payload.Token)
		return payload.User, TierRemote, nil
	}
	if !errors.Is(err, apperrors.ErrRemoteUnavailable) {
		// Timed out, rejected or conflicting: the auth flow surfaces
		// its errors instead of degrading.
		return nil, TierRemote, err
	}

	s.log.Warn().Err(err).Msg("remote signup failed, using mirror")
	user, err := s.mirror.SaveUser(&models.User{Name: name, Email: email})
	if err != nil {
		return nil, TierMirror, err
	}
	s.establishSession(user, "")
	return user, TierMirror, nil
}

// Login resolves an account by email and establishes the session. An
// email unknown to both tiers is a not-found error, never a silent
// degradation.
func (s *Store) Login(ctx context.Context, email string) (*models.User, Tier, error) {
	email = normalize.Email(email)
	if email == "" {
		return nil, TierRemote, fmt.Errorf("%w: email is required", apperrors.ErrValidationFailed)
	}

	payload, err := s.remote.auth(ctx, map[string]interface{}{
		"action": "login",
		"email":  email,
	})
	if err == nil {
		s.establishSession(payload.User, payload.Token)
		return payload.User, TierRemote, nil
	}
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, TierRemote, apperrors.ErrUserNotFound
	}
	if !errors.Is(err, apperrors.ErrRemoteUnavailable) {
		return nil, TierRemote, err
	}

	s.log.Warn().Err(err).Msg("remote login failed, using mirror")
	user, err := s.mirror.FindUserByEmail(email)
	if err != nil {
		return nil, TierMirror, err
	}
	s.establishSession(user, "")
	return user, TierMirror, nil
}

// UpdateUser patches profile fields. Identity fields are stripped by
// whichever tier applies the update. When the edited account is the
// session user the session copy is refreshed too.
func (s *Store) UpdateUser(ctx context.Context, id string, fields map[string]interface{}) (*models.User, Tier, error) {
	if id == "" {
		return nil, TierRemote, fmt.Errorf("%w: user id is required", apperrors.ErrValidationFailed)
	}

	payload, err := s.remote.auth(ctx, map[string]interface{}{
		"action":  "update",
		"userId":  id,
		"updates": fields,
	})
	if err == nil {
		s.refreshSession(payload.User)
		return payload.User, TierRemote, nil
	}
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, TierRemote, apperrors.ErrUserNotFound
	}
	if !errors.Is(err, apperrors.ErrRemoteUnavailable) {
		return nil, TierRemote, err
	}

	s.log.Warn().Err(err).Msg("remote profile update failed, patching mirror")
	user, err := s.mirror.UpdateUser(id, fields)
	if err != nil {
		return nil, TierMirror, err
	}
	s.refreshSession(user)
	return user, TierMirror, nil
}

// CurrentUser returns the session user, or nil when logged out.
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// SetCurrentUser replaces the session without an auth round trip.
func (s *Store) SetCurrentUser(user *models.User) {
	s.establishSession(user, "")
}

// Logout clears the session from memory and the mirror.
func (s *Store) Logout() {
	s.mu.Lock()
	s.session = nil
	s.token = ""
	s.mu.Unlock()

	s.remote.setToken("")
	if err := s.mirror.SetSession(nil); err != nil {
		s.log.Warn().Err(err).Msg("failed to clear mirrored session")
	}
}

// Items returns the feed, newest first. includeUnverified requires an
// admin session to have any effect remotely; the mirror applies the
// same filter locally.
func (s *Store) Items(ctx context.Context, includeUnverified bool) ([]*models.Item, Tier, error) {
	items, err := s.remote.items(ctx, includeUnverified)
	if err == nil {
		return items, TierRemote, nil
	}
	if !errors.Is(err, apperrors.ErrRemoteUnavailable) {
		return nil, TierRemote, err
	}

	s.log.Warn().Err(err).Msg("remote item fetch failed, serving mirror")
	items, err = s.mirror.Items(includeUnverified)
	if err != nil {
		return nil, TierMirror, err
	}
	return items, TierMirror, nil
}

// SaveItem posts a new report. On fallback the mirror fabricates the
// id and timestamp and keeps the feed newest first.
func (s *Store) SaveItem(ctx context.Context, item *models.Item) (*models.Item, Tier, error) {
	if err := validateItem(item); err != nil {
		return nil, TierRemote, err
	}

	saved, err := s.remote.saveItem(ctx, item)
	if err == nil {
		return saved, TierRemote, nil
	}
	if !errors.Is(err, apperrors.ErrRemoteUnavailable) {
		return nil, TierRemote, err
	}

	s.log.Warn().Err(err).Msg("remote item save failed, writing mirror")
	saved, err = s.mirror.SaveItem(item)
	if err != nil {
		return nil, TierMirror, err
	}
	return saved, TierMirror, nil
}

// UpdateItem applies a generic partial update.
func (s *Store) UpdateItem(ctx context.Context, id string, fields map[string]interface{}) (*models.Item, Tier, error) {
	if id == "" {
		return nil, TierRemote, fmt.Errorf("%w: item id is required", apperrors.ErrValidationFailed)
	}

	updated, err := s.remote.updateItem(ctx, id, fields)
	if err == nil {
		// Keep the mirror copy in step so the next fallback read does
		// not resurrect stale fields.
		if _, mErr := s.mirror.UpdateItem(id, fields); mErr != nil && !errors.Is(mErr, apperrors.ErrItemNotFound) {
			s.log.Warn().Err(mErr).Msg("failed to sync item update into mirror")
		}
		return updated, TierRemote, nil
	}
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, TierRemote, apperrors.ErrItemNotFound
	}
	if !errors.Is(err, apperrors.ErrRemoteUnavailable) {
		return nil, TierRemote, err
	}

	s.log.Warn().Err(err).Msg("remote item update failed, patching mirror")
	updated, err = s.mirror.UpdateItem(id, fields)
	if err != nil {
		return nil, TierMirror, err
	}
	return updated, TierMirror, nil
}

// UpdateItemStatus is a convenience wrapper setting status.
func (s *Store) UpdateItemStatus(ctx context.Context, id string, status models.ItemStatus) (*models.Item, Tier, error) {
	if !status.Valid() {
		return nil, TierRemote, fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, status)
	}
	return s.UpdateItem(ctx, id, map[string]interface{}{"status": string(status)})
}

// VerifyItem is a convenience wrapper setting isVerified.
func (s *Store) VerifyItem(ctx context.Context, id string, verified bool) (*models.Item, Tier, error) {
	if id == "" {
		return nil, TierRemote, fmt.Errorf("%w: item id is required", apperrors.ErrValidationFailed)
	}

	updated, err := s.remote.verifyItem(ctx, id, verified)
	if err == nil {
		if _, mErr := s.mirror.UpdateItem(id, map[string]interface{}{"isVerified": verified}); mErr != nil && !errors.Is(mErr, apperrors.ErrItemNotFound) {
			s.log.Warn().Err(mErr).Msg("failed to sync verification into mirror")
		}
		return updated, TierRemote, nil
	}
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, TierRemote, apperrors.ErrItemNotFound
	}
	if !errors.Is(err, apperrors.ErrRemoteUnavailable) {
		return nil, TierRemote, err
	}

	updated, err = s.mirror.UpdateItem(id, map[string]interface{}{"isVerified": verified})
	if err != nil {
		return nil, TierMirror, err
	}
	return updated, TierMirror, nil
}

// DeleteItem removes a report. The mirror copy is always purged, even
// when the remote delete succeeded, so the tiers cannot diverge on
// the next fallback.
func (s *Store) DeleteItem(ctx context.Context, id string) (Tier, error) {
	if id == "" {
		return TierRemote, fmt.Errorf("%w: item id is required", apperrors.ErrValidationFailed)
	}

	remoteErr := s.remote.deleteItem(ctx, id)

	if err := s.mirror.DeleteItem(id); err != nil {
		s.log.Warn().Err(err).Msg("failed to purge item from mirror")
	}

	switch {
	case remoteErr == nil:
		return TierRemote, nil
	case errors.Is(remoteErr, apperrors.ErrResourceNotFound):
		return TierRemote, apperrors.ErrItemNotFound
	case errors.Is(remoteErr, apperrors.ErrRemoteUnavailable):
		s.log.Warn().Err(remoteErr).Msg("remote item delete failed, mirror purged")
		return TierMirror, nil
	default:
		return TierRemote, remoteErr
	}
}

// Messages returns every message the user sent or received, oldest
// first.
func (s *Store) Messages(ctx context.Context, userID string) ([]*models.Message, Tier, error) {
	if userID == "" {
		return nil, TierRemote, fmt.Errorf("%w: user id is required", apperrors.ErrValidationFailed)
	}

	msgs, err := s.remote.messages(ctx, userID)
	if err == nil {
		return msgs, TierRemote, nil
	}
	if !errors.Is(err, apperrors.ErrRemoteUnavailable) {
		return nil, TierRemote, err
	}

	s.log.Warn().Err(err).Msg("remote message fetch failed, serving mirror")
	msgs, err = s.mirror.Messages(userID)
	if err != nil {
		return nil, TierMirror, err
	}
	return msgs, TierMirror, nil
}

// MessagesForItem filters the user's messages to one item. It is a
// pure client-side filter over Messages, never a separate call.
func (s *Store) MessagesForItem(ctx context.Context, userID, itemID string) ([]*models.Message, Tier, error) {
	msgs, tier, err := s.Messages(ctx, userID)
	if err != nil {
		return nil, tier, err
	}

	scoped := make([]*models.Message, 0, len(msgs))
	for _, msg := range msgs {
		if msg.ItemID == itemID {
			scoped = append(scoped, msg)
		}
	}
	return scoped, tier, nil
}

// SendMessage appends a message remotely or, failing that, to the
// mirror. Either way the stored copy gets a fresh id and timestamp.
func (s *Store) SendMessage(ctx context.Context, msg *models.Message) (*models.Message, Tier, error) {
	if msg == nil || msg.SenderID == "" || msg.ReceiverID == "" {
		return nil, TierRemote, fmt.Errorf("%w: sender and receiver are required", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(msg.Content) == "" && msg.ImageURL == "" {
		return nil, TierRemote, apperrors.ErrEmptyMessage
	}

	sent, err := s.remote.sendMessage(ctx, msg)
	if err == nil {
		return sent, TierRemote, nil
	}
	if !errors.Is(err, apperrors.ErrRemoteUnavailable) {
		return nil, TierRemote, err
	}

	s.log.Warn().Err(err).Msg("remote message send failed, appending to mirror")
	sent, err = s.mirror.AppendMessage(msg)
	if err != nil {
		return nil, TierMirror, err
	}
	return sent, TierMirror, nil
}

// Users returns the member directory. Admin only; the mirror keeps no
// directory beyond accounts created through it.
func (s *Store) Users(ctx context.Context) ([]*models.User, Tier, error) {
	users, err := s.remote.users(ctx)
	if err == nil {
		return users, TierRemote, nil
	}
	return nil, TierRemote, err
}

// PollMessages re-fetches the user's messages every interval and
// hands each batch to fn along with the tier that served it. It
// returns when ctx is cancelled. Each tick issues an independent
// request; slow polls are not coalesced, matching the original
// polling contract.
func (s *Store) PollMessages(ctx context.Context, userID string, interval time.Duration, fn func([]*models.Message, Tier)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go func() {
				msgs, tier, err := s.Messages(ctx, userID)
				if err != nil {
					s.log.Warn().Err(err).Msg("message poll failed")
					return
				}
				fn(msgs, tier)
			}()
		}
	}
}

func (s *Store) establishSession(user *models.User, token string) {
	s.mu.Lock()
	s.session = user
	s.token = token
	s.mu.Unlock()

	s.remote.setToken(token)
	if err := s.mirror.SetSession(user); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist session to mirror")
	}
}

// refreshSession updates the session copy when the edited user is the
// one logged in.
func (s *Store) refreshSession(user *models.User) {
	s.mu.Lock()
	current := s.session
	s.mu.Unlock()

	if current == nil || user == nil || current.ID != user.ID {
		return
	}

	s.mu.Lock()
	s.session = user
	s.mu.Unlock()
	if err := s.mirror.SetSession(user); err != nil {
		s.log.Warn().Err(err).Msg("failed to refresh mirrored session")
	}
}

// validateItem rejects a report before any network round trip.
func validateItem(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(item.Title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(item.Description) == "" {
		return fmt.Errorf("%w: description is required", apperrors.ErrValidationFailed)
	}
	if item.PosterID == "" {
		return fmt.Errorf("%w: poster id is required", apperrors.ErrValidationFailed)
	}
	if !item.Category.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidCategory, item.Category)
	}
	if !item.Status.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidStatus, item.Status)
	}
	return nil
}
