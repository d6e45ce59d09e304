package validator

import (
	"stayease/pkg/logger"
	"stayease/pkg/model"
	"stayease/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

type InquiryValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewInquiryValidator(log *logger.Logger) *InquiryValidator {
	return &InquiryValidator{
		validate: newValidate(log),
		logger:   log,
	}
}

// Normalize cleans req in place before validation.
func (v *InquiryValidator) Normalize(req *model.InquiryRequest) {
	req.Name = sanitizer.NormalizeName(req.Name)
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.Phone = sanitizer.NormalizePhone(req.Phone)
	req.Message = sanitizer.NormalizeNotes(req.Message)
	req.PreferredVisitDate = sanitizer.OptionalString(req.PreferredVisitDate)
}

func (v *InquiryValidator) Validate(req *model.InquiryRequest) error {
	v.Normalize(req)
	return structErrors(v.validate, req)
}
