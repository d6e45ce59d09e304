package validator

import (
	"stayease/pkg/model"
	"stayease/pkg/sanitizer"
)

// NormalizeRegistration cleans req in place. Passwords are left untouched.
func (v *BookingValidator) NormalizeRegistration(req *model.RegisterRequest) {
	req.Email = sanitizer.NormalizeEmail(req.Email)
	req.FirstName = sanitizer.NormalizeName(req.FirstName)
	req.LastName = sanitizer.NormalizeName(req.LastName)
	req.Phone = sanitizer.NormalizePhone(req.Phone)
}

func (v *BookingValidator) ValidateRegistration(req *model.RegisterRequest) error {
	v.NormalizeRegistration(req)
	return structErrors(v.validate, req)
}
