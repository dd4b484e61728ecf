package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yegebere/gebeya-auth/internal/application"
	"github.com/yegebere/gebeya-auth/internal/domain/phone"
	"github.com/yegebere/gebeya-auth/pkg/response"
	"github.com/yegebere/gebeya-auth/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type issueRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Channel     string `json:"channel" binding:"omitempty,oneof=sms telegram bot"`
	Purpose     string `json:"purpose" binding:"omitempty,oneof=login registration"`
}

type verifyRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Code        string `json:"code" binding:"required,otpcode"`
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func reqCtx(c *gin.Context) context.Context {
	return application.WithRequestID(c.Request.Context(), c.GetString("request_id"))
}

// IssueOTP POST /api/auth/otp/issue
func (h *AuthHandler) IssueOTP(c *gin.Context) {
	var req issueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Issue(reqCtx(c), req.PhoneNumber, req.Channel, req.Purpose)
	if err != nil {
		var rl *application.RateLimitedError
		switch {
		case errors.Is(err, phone.ErrInvalid):
			response.Error[any](c, http.StatusBadRequest, "invalid ethiopian phone number", nil)
		case errors.As(err, &rl):
			c.Header("Retry-After", itoaSeconds(rl.RetryAfter))
			response.Error[any](c, http.StatusTooManyRequests, "code already sent, wait before retrying",
				gin.H{"retry_after_seconds": int(rl.RetryAfter.Seconds())})
		case errors.Is(err, application.ErrDeliveryFailed):
			response.Error[any](c, http.StatusBadGateway, "failed to send verification code", nil)
		default:
			h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("otp issue failed")
			response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"channel_used":       res.ChannelUsed,
		"expires_in_seconds": int(res.ExpiresIn.Seconds()),
	}, "verification code sent", nil)
}

// VerifyOTP POST /api/auth/otp/verify
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, err := h.Svc.Verify(reqCtx(c), req.PhoneNumber, req.Code)
	if err != nil {
		var lo *application.LockedOutError
		switch {
		case errors.Is(err, phone.ErrInvalid):
			response.Error[any](c, http.StatusBadRequest, "invalid ethiopian phone number", nil)
		case errors.As(err, &lo):
			c.Header("Retry-After", itoaSeconds(lo.RetryAfter))
			response.Error[any](c, http.StatusLocked, "too many failed attempts",
				gin.H{"retry_after_seconds": int(lo.RetryAfter.Seconds())})
		case errors.Is(err, application.ErrOtpNotFound), errors.Is(err, application.ErrOtpMismatch):
			// One message for both: never reveal whether a code was issued.
			response.Error[any](c, http.StatusBadRequest, "invalid or expired code", nil)
		default:
			h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("otp verify failed")
			response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
		}
		return
	}

	u := res.User
	response.Success(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":           u.ID,
			"phone_number": u.PhoneNumber.String(),
			"name":         u.Name,
			"language":     u.Language,
			"is_verified":  u.IsVerified,
			"is_new":       res.IsNew,
		},
		"session_token": res.SessionToken,
	}, "login successful", gin.H{"token_expires_at": res.TokenExpiry})
}

func itoaSeconds(d time.Duration) string {
	return strconv.Itoa(int(d.Seconds()))
}
