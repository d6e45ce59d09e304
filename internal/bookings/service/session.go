package service

import (
	"context"

	bookingserrors "stayease/internal/bookings/errors"
	"stayease/internal/bookings/validator"
	"stayease/internal/cache"
	"stayease/internal/session"
	"stayease/pkg/client"
	"stayease/pkg/config"
	apperrors "stayease/pkg/errors"
	"stayease/pkg/model"
	"stayease/pkg/sanitizer"
)

type SessionService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*SessionView, error)
	Register(ctx context.Context, req *model.RegisterRequest, role model.Role) (*model.User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*SessionView, error)
	Refresh(ctx context.Context) (*SessionView, error)
	Close()
}

type sessionService struct {
	base
	validator   *validator.BookingValidator
	unsubscribe func()
}

// NewSessionService clears the query cache whenever the session ends, for
// whatever reason, so no user ever sees another user's cached data.
func NewSessionService(
	c *client.Client,
	store *cache.Store,
	sess *session.Manager,
	validator *validator.BookingValidator,
	cfg *config.Config,
) SessionService {
	s := &sessionService{
		base:      newBase(c, store, sess, nil, cfg, "session"),
		validator: validator,
	}
	s.unsubscribe = sess.Subscribe(s.onEnded)
	return s
}

func (s *sessionService) onEnded(e session.Ended) {
	n := s.store.Invalidate(cache.Mutation{Type: cache.SessionEnded})
	s.log.Info("Cleared cached queries", "reason", e.Reason, "status", e.Status, "entries", n)
}

func (s *sessionService) Login(ctx context.Context, req *model.LoginRequest) (*SessionView, error) {
	req.Email = sanitizer.NormalizeEmail(req.Email)
	if err := s.validator.ValidateLogin(req); err != nil {
		return nil, validationError("Invalid credentials", err)
	}

	jwt, err := s.client.Auth.Login(ctx, req)
	if err != nil {
		s.log.Warn("Login failed", "email", req.Email, "error", err)
		return nil, err
	}

	s.store.Clear()
	if err := s.session.Start(jwt.AccessToken, jwt.User); err != nil {
		return nil, apperrors.Internal("Failed to start session", err)
	}
	return s.view()
}

// Register creates a seeker or owner account. It does not sign in; the new
// user logs in afterwards like anyone else.
func (s *sessionService) Register(ctx context.Context, req *model.RegisterRequest, role model.Role) (*model.User, error) {
	if role != model.RoleUser && role != model.RoleOwner {
		return nil, apperrors.InvalidInput("Accounts can only be registered as USER or OWNER")
	}
	if err := s.validator.ValidateRegistration(req); err != nil {
		s.log.Warn("Registration validation failed", "error", err)
		return nil, validationError("Invalid registration", err)
	}

	user, err := s.client.Auth.Register(context.WithoutCancel(ctx), req, role)
	if err != nil {
		s.log.Warn("Registration failed", "email", req.Email, "role", role, "error", err)
		return nil, err
	}
	s.log.Info("Account registered", "id", user.ID, "role", user.Role)
	return user, nil
}

// Logout is a no-op when nobody is signed in.
func (s *sessionService) Logout(_ context.Context) error {
	s.session.End(session.ReasonSignedOut)
	return nil
}

func (s *sessionService) Current(_ context.Context) (*SessionView, error) {
	return s.view()
}

// Refresh re-reads the profile upstream. A rejected token ends the session
// through the unauthorized channel and surfaces as 401.
func (s *sessionService) Refresh(ctx context.Context) (*SessionView, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, err
	}
	user, err := s.client.Auth.Me(ctx)
	if err != nil {
		return nil, err
	}
	if !s.session.UpdateUser(*user) {
		return nil, apperrors.Unauthorized(bookingserrors.ErrNotSignedIn.Error())
	}
	return s.view()
}

func (s *sessionService) view() (*SessionView, error) {
	user, err := s.requireUser()
	if err != nil {
		return nil, err
	}
	view := &SessionView{User: *user, Role: user.Role}
	if exp := s.session.ExpiresAt(); !exp.IsZero() {
		view.ExpiresAt = &exp
	}
	return view, nil
}

func (s *sessionService) Close() {
	s.unsubscribe()
}
