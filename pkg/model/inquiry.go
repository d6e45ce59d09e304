package model

type InquiryRequest struct {
	PropertyID         int64   `json:"propertyId" validate:"required,gt=0"`
	Name               string  `json:"name" validate:"required,min=2"`
	Email              string  `json:"email" validate:"required,email"`
	Phone              string  `json:"phone" validate:"required,len=10,numeric"`
	Message            string  `json:"message,omitempty" validate:"omitempty,max=500"`
	PreferredVisitDate *string `json:"preferredVisitDate" validate:"omitempty,isodate"`
}
