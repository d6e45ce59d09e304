package model

type BedStatus string

const (
	BedAvailable   BedStatus = "AVAILABLE"
	BedOccupied    BedStatus = "OCCUPIED"
	BedReserved    BedStatus = "RESERVED"
	BedMaintenance BedStatus = "MAINTENANCE"
)

type RoomType string

const (
	RoomSingle    RoomType = "SINGLE"
	RoomDouble    RoomType = "DOUBLE"
	RoomTriple    RoomType = "TRIPLE"
	RoomDormitory RoomType = "DORMITORY"
)

type PropertyType string

const (
	PropertyPG        PropertyType = "PG"
	PropertyHostel    PropertyType = "HOSTEL"
	PropertyFlat      PropertyType = "FLAT"
	PropertyApartment PropertyType = "APARTMENT"
)

type GenderPreference string

const (
	GenderMale   GenderPreference = "MALE"
	GenderFemale GenderPreference = "FEMALE"
	GenderCoed   GenderPreference = "COED"
)

type Bed struct {
	ID               int64     `json:"id"`
	BedNumber        string    `json:"bedNumber"`
	Status           BedStatus `json:"status"`
	OccupiedFrom     *string   `json:"occupiedFrom,omitempty"`
	ExpectedCheckout *string   `json:"expectedCheckout,omitempty"`
}

type Room struct {
	ID                  int64    `json:"id"`
	PropertyID          int64    `json:"propertyId"`
	RoomNumber          string   `json:"roomNumber"`
	RoomType            RoomType `json:"roomType"`
	FloorNumber         *int     `json:"floorNumber,omitempty"`
	TotalBeds           int      `json:"totalBeds"`
	AvailableBeds       int      `json:"availableBeds"`
	RentPerBed          float64  `json:"rentPerBed"`
	HasAttachedBathroom bool     `json:"hasAttachedBathroom"`
	HasAC               bool     `json:"hasAc"`
	HasBalcony          bool     `json:"hasBalcony"`
	RoomSizeSqft        *int     `json:"roomSizeSqft,omitempty"`
	Description         string   `json:"description,omitempty"`
	IsActive            *bool    `json:"isActive,omitempty"`
	Beds                []Bed    `json:"beds,omitempty"`
}

type PropertyOwner struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
}

type Property struct {
	ID               int64            `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description,omitempty"`
	PropertyType     PropertyType     `json:"propertyType"`
	GenderPreference GenderPreference `json:"genderPreference"`
	AddressLine1     string           `json:"addressLine1"`
	AddressLine2     string           `json:"addressLine2,omitempty"`
	City             string           `json:"city"`
	State            string           `json:"state"`
	Pincode          string           `json:"pincode"`
	FullAddress      string           `json:"fullAddress,omitempty"`
	MinRent          float64          `json:"minRent"`
	MaxRent          float64          `json:"maxRent"`
	SecurityDeposit  *float64         `json:"securityDeposit,omitempty"`
	NoticePeriodDays *int             `json:"noticePeriodDays,omitempty"`
	TotalRooms       int              `json:"totalRooms"`
	TotalBeds        int              `json:"totalBeds"`
	AvailableBeds    int              `json:"availableBeds"`
	AvgRating        *float64         `json:"avgRating,omitempty"`
	TotalReviews     int              `json:"totalReviews"`
	IsVerified       bool             `json:"isVerified"`
	IsFeatured       bool             `json:"isFeatured"`
	IsActive         *bool            `json:"isActive,omitempty"`
	Images           []string         `json:"images,omitempty"`
	PrimaryImage     *string          `json:"primaryImage,omitempty"`
	Amenities        []string         `json:"amenities,omitempty"`
	Owner            PropertyOwner    `json:"owner"`
	CreatedAt        string           `json:"createdAt,omitempty"`
}

// PropertySearch mirrors the upstream search query parameters; zero values are omitted.
type PropertySearch struct {
	City             string
	PropertyType     PropertyType
	GenderPreference GenderPreference
	MinRent          float64
	MaxRent          float64
	AvailableBeds    int
	Page             int
	Size             int
}

type Amenity struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon,omitempty"`
	Category string `json:"category,omitempty"`
}

// PropertyRequest creates or replaces an owner's listing.
type PropertyRequest struct {
	Name             string           `json:"name" validate:"required,max=100"`
	Description      string           `json:"description,omitempty" validate:"omitempty,max=2000"`
	PropertyType     PropertyType     `json:"propertyType" validate:"required,oneof=PG HOSTEL FLAT APARTMENT"`
	GenderPreference GenderPreference `json:"genderPreference" validate:"required,oneof=MALE FEMALE COED"`
	AddressLine1     string           `json:"addressLine1" validate:"required"`
	AddressLine2     string           `json:"addressLine2,omitempty"`
	City             string           `json:"city" validate:"required"`
	State            string           `json:"state" validate:"required"`
	Pincode          string           `json:"pincode" validate:"required,len=6,numeric"`
	Latitude         *float64         `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude        *float64         `json:"longitude,omitempty" validate:"omitempty,longitude"`
	MinRent          float64          `json:"minRent" validate:"gt=0"`
	MaxRent          float64          `json:"maxRent" validate:"gt=0,gtefield=MinRent"`
	SecurityDeposit  *float64         `json:"securityDeposit,omitempty" validate:"omitempty,gte=0"`
	NoticePeriodDays *int             `json:"noticePeriodDays,omitempty" validate:"omitempty,gte=0"`
	AmenityIDs       []int64          `json:"amenityIds,omitempty" validate:"omitempty,dive,gt=0"`
	ImageURLs        []string         `json:"imageUrls,omitempty" validate:"omitempty,dive,url"`
}

// RoomRequest creates or replaces a room. The server creates one AVAILABLE
// bed per TotalBeds and never removes beds when the count shrinks.
type RoomRequest struct {
	RoomNumber          string   `json:"roomNumber" validate:"required,max=20"`
	RoomType            RoomType `json:"roomType" validate:"required,oneof=SINGLE DOUBLE TRIPLE DORMITORY"`
	FloorNumber         *int     `json:"floorNumber,omitempty"`
	TotalBeds           int      `json:"totalBeds" validate:"gte=1"`
	RentPerBed          float64  `json:"rentPerBed" validate:"gt=0"`
	HasAttachedBathroom bool     `json:"hasAttachedBathroom"`
	HasAC               bool     `json:"hasAc"`
	HasBalcony          bool     `json:"hasBalcony"`
	RoomSizeSqft        *int     `json:"roomSizeSqft,omitempty" validate:"omitempty,gt=0"`
	Description         string   `json:"description,omitempty" validate:"omitempty,max=500"`
}
