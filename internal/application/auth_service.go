package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yegebere/gebeya-auth/internal/domain/entity"
	"github.com/yegebere/gebeya-auth/internal/domain/phone"
	repo "github.com/yegebere/gebeya-auth/internal/domain/repository"
	"github.com/yegebere/gebeya-auth/internal/events"
	"github.com/yegebere/gebeya-auth/internal/infrastructure/delivery"
	"github.com/yegebere/gebeya-auth/pkg/helpers"
)

const defaultLanguage = "am"

// AuthService drives the whole OTP flow: issuance with delivery fallback,
// verification with attempt limits, and identity resolution with a session
// credential.
type AuthService struct {
	Users  repo.UserRepository
	OTPs   repo.OTPRepository
	Guard  OTPGuard
	Chain  *delivery.Chain
	JWT    *helpers.JWTManager
	Events events.Publisher
	Logger *logrus.Logger

	OTPLength     int
	OTPTTL        time.Duration
	IssueCooldown time.Duration
	MaxAttempts   int
	Lockout       time.Duration
}

func NewAuthService(users repo.UserRepository, otps repo.OTPRepository, guard OTPGuard, chain *delivery.Chain, jwt *helpers.JWTManager, pub events.Publisher, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Users:  users,
		OTPs:   otps,
		Guard:  guard,
		Chain:  chain,
		JWT:    jwt,
		Events: pub,
		Logger: logger,

		OTPLength:     6,
		OTPTTL:        5 * time.Minute,
		IssueCooldown: 45 * time.Second,
		MaxAttempts:   5,
		Lockout:       10 * time.Minute,
	}
}

type IssueResult struct {
	PhoneNumber phone.Number
	ChannelUsed string
	ExpiresIn   time.Duration
}

type VerifyResult struct {
	User         *entity.User
	IsNew        bool
	SessionToken string
	TokenExpiry  time.Time
}

// Issue generates a fresh code for the phone, persists it and pushes it
// through the delivery chain. preferredChannel moves that channel to the
// front of the chain; the result reports the channel that delivered.
func (s *AuthService) Issue(ctx context.Context, rawPhone, preferredChannel, purpose string) (*IssueResult, error) {
	n, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, err
	}
	if purpose != entity.PurposeRegistration {
		purpose = entity.PurposeLogin
	}

	ok, retryAfter, err := s.Guard.StartCooldown(ctx, n.String(), s.IssueCooldown)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &RateLimitedError{RetryAfter: retryAfter}
	}

	code, err := helpers.GenOTPCode(s.OTPLength)
	if err != nil {
		return nil, err
	}
	hash, err := helpers.HashOTPCode(code)
	if err != nil {
		return nil, err
	}

	chain := s.Chain
	if preferredChannel == entity.ChannelTelegram || preferredChannel == "bot" {
		chain = chain.Prefer(entity.ChannelTelegram)
	}

	rec := &entity.OTPRecord{
		PhoneNumber: n,
		CodeHash:    hash,
		Channel:     entity.ChannelSMS,
		Purpose:     purpose,
		ExpiresAt:   time.Now().Add(s.OTPTTL),
	}
	if err := s.OTPs.Create(ctx, rec); err != nil {
		return nil, err
	}

	message := delivery.OTPMessage(code, "5 minutes")
	channelUsed, attempts, err := chain.Deliver(ctx, n, message)
	for _, a := range attempts {
		if a.Err != nil {
			s.Logger.WithFields(logrus.Fields{"channel": a.Channel, "phone": n.Masked()}).
				WithError(a.Err).Warn("otp delivery attempt failed")
		}
	}
	if err != nil {
		// Nothing was delivered: void the stored record so the client is
		// never told "sent" while an unusable code stays outstanding.
		if vErr := s.OTPs.VoidActive(ctx, n); vErr != nil {
			s.Logger.WithError(vErr).WithField("phone", n.Masked()).Error("void otp after delivery failure")
		}
		s.publish(ctx, events.AuthEvent{Type: events.TypeOTPDeliveryFailed, Phone: n.Masked(), Purpose: purpose})
		return nil, ErrDeliveryFailed
	}

	// The fallback channel actually used gets its own record, mirroring the
	// per-channel bookkeeping of issuance.
	if channelUsed != rec.Channel {
		fb := &entity.OTPRecord{
			PhoneNumber: n,
			CodeHash:    hash,
			Channel:     channelUsed,
			Purpose:     purpose,
			ExpiresAt:   rec.ExpiresAt,
		}
		if err := s.OTPs.Create(ctx, fb); err != nil {
			return nil, err
		}
	}

	// New code, fresh attempt budget.
	if err := s.Guard.Reset(ctx, n.String()); err != nil {
		s.Logger.WithError(err).WithField("phone", n.Masked()).Warn("reset attempt counter failed")
	}

	s.publish(ctx, events.AuthEvent{Type: events.TypeOTPIssued, Phone: n.Masked(), Channel: channelUsed, Purpose: purpose})
	return &IssueResult{PhoneNumber: n, ChannelUsed: channelUsed, ExpiresIn: s.OTPTTL}, nil
}

// Verify checks the submitted code against the newest active record,
// enforcing lockout, and on success consumes the record exactly once and
// resolves the caller's identity.
func (s *AuthService) Verify(ctx context.Context, rawPhone, code string) (*VerifyResult, error) {
	n, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, err
	}

	locked, err := s.Guard.LockedFor(ctx, n.String())
	if err != nil {
		return nil, err
	}
	if locked > 0 {
		return nil, &LockedOutError{RetryAfter: locked}
	}

	rec, err := s.OTPs.FindActive(ctx, n, time.Now())
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrOtpNotFound
	}

	if !helpers.CompareOTPCode(rec.CodeHash, code) {
		count, gErr := s.Guard.FailedAttempt(ctx, n.String(), s.Lockout)
		if gErr != nil {
			return nil, gErr
		}
		if count >= int64(s.MaxAttempts) {
			if lErr := s.Guard.Lock(ctx, n.String(), s.Lockout); lErr != nil {
				return nil, lErr
			}
			s.publish(ctx, events.AuthEvent{Type: events.TypeLockout, Phone: n.Masked()})
		}
		s.publish(ctx, events.AuthEvent{Type: events.TypeOTPMismatch, Phone: n.Masked()})
		return nil, ErrOtpMismatch
	}

	consumed, err := s.OTPs.Consume(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	if !consumed {
		// A concurrent verify won the race; this code is spent.
		return nil, ErrOtpNotFound
	}

	if err := s.Guard.Reset(ctx, n.String()); err != nil {
		s.Logger.WithError(err).WithField("phone", n.Masked()).Warn("reset attempt counter failed")
	}

	return s.ResolveUser(ctx, n)
}

// ResolveUser upserts the user for the phone and issues the session
// credential. Idempotent under concurrent calls: the unique phone index in
// storage picks exactly one creation winner and losers reuse its row.
func (s *AuthService) ResolveUser(ctx context.Context, n phone.Number) (*VerifyResult, error) {
	u := &entity.User{
		ID:          uuid.NewString(),
		PhoneNumber: n,
		Name:        entity.DefaultName(n),
		Language:    defaultLanguage,
		IsVerified:  true,
	}
	created, err := s.Users.CreateIfAbsent(ctx, u)
	if err != nil {
		return nil, err
	}
	if !created {
		if err := s.Users.TouchLastLogin(ctx, u.ID); err != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("touch last login failed")
		}
	}

	token, exp, err := s.JWT.GenerateSessionToken(u.ID, u.PhoneNumber, u.Language)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate session token failed")
		return nil, err
	}

	if created {
		s.publish(ctx, events.AuthEvent{Type: events.TypeUserCreated, Phone: n.Masked(), UserID: u.ID})
	}
	s.publish(ctx, events.AuthEvent{Type: events.TypeLogin, Phone: n.Masked(), UserID: u.ID})

	return &VerifyResult{User: u, IsNew: created, SessionToken: token, TokenExpiry: exp}, nil
}

func (s *AuthService) publish(ctx context.Context, ev events.AuthEvent) {
	if s.Events == nil {
		return
	}
	ev.At = time.Now().UTC()
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		ev.RequestID = rid
	}
	c, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.Events.PublishJSON(c, ev); err != nil && !errors.Is(err, context.Canceled) {
		s.Logger.WithError(err).WithField("type", ev.Type).Warn("publish auth event failed")
	}
}

type requestIDKey struct{}

// WithRequestID tags the context so published events carry the request's
// correlation id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}
