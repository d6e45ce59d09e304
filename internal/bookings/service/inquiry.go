package service

import (
	"context"

	"stayease/internal/bookings/validator"
	"stayease/internal/cache"
	"stayease/internal/session"
	"stayease/pkg/client"
	"stayease/pkg/config"
	apperrors "stayease/pkg/errors"
	"stayease/pkg/model"
)

const inquirySentMessage = "Inquiry sent"

type InquiryService interface {
	Send(ctx context.Context, req *model.InquiryRequest) (*InquiryResult, error)
}

type inquiryService struct {
	base
	validator *validator.InquiryValidator
}

func NewInquiryService(
	c *client.Client,
	store *cache.Store,
	sess *session.Manager,
	validator *validator.InquiryValidator,
	cfg *config.Config,
) InquiryService {
	return &inquiryService{
		base:      newBase(c, store, sess, nil, cfg, "inquiries"),
		validator: validator,
	}
}

// Send posts the inquiry. A backend without the inquiry endpoint is not an
// error: the result says the feature is not available yet.
func (s *inquiryService) Send(ctx context.Context, req *model.InquiryRequest) (*InquiryResult, error) {
	if _, err := s.requireUser(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, validationError("Invalid inquiry", err)
	}

	err := s.client.Inquiries.Create(context.WithoutCancel(ctx), req)
	switch {
	case apperrors.HasCode(err, apperrors.CodeFeatureUnavailable):
		s.log.Info("Inquiry endpoint not available", "property_id", req.PropertyID)
		return &InquiryResult{Available: false, Message: apperrors.Message(err)}, nil
	case err != nil:
		s.log.Warn("Failed to send inquiry", "property_id", req.PropertyID, "error", err)
		return nil, err
	}

	s.log.Info("Inquiry sent", "property_id", req.PropertyID)
	return &InquiryResult{Available: true, Message: inquirySentMessage}, nil
}
