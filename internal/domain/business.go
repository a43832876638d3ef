package domain

import "time"

// Business is the subset of the legal API business record the dashboard reads.
type Business struct {
	Identifier     string     `json:"identifier"`
	LegalName      string     `json:"legalName"`
	LegalType      string     `json:"legalType"`
	State          string     `json:"state"`
	GoodStanding   *bool      `json:"goodStanding,omitempty"`
	AdminFreeze    bool       `json:"adminFreeze"`
	InLiquidation  bool       `json:"inLiquidation,omitempty"`
	InDissolution  bool       `json:"inDissolution,omitempty"`
	ExpiryDate     *time.Time `json:"expiryDate,omitempty"`
	PendingFilings []Filing   `json:"pendingFilings,omitempty"`
}

// FilingStatus values reported by the legal API.
const (
	FilingStatusPending         = "PENDING"
	FilingStatusPaid            = "PAID"
	FilingStatusApproved        = "APPROVED"
	FilingStatusChangeRequested = "CHANGE_REQUESTED"
)

// Filing is a summary of a filing that has not yet completed.
type Filing struct {
	ID                int64      `json:"filingId"`
	Name              string     `json:"name"`
	Status            string     `json:"status"`
	EffectiveDate     *time.Time `json:"effectiveDate,omitempty"`
	IsFutureEffective bool       `json:"isFutureEffective,omitempty"`
}

// Address is a mailing or delivery address.
type Address struct {
	StreetAddress           string `json:"streetAddress"`
	StreetAddressAdditional string `json:"streetAddressAdditional,omitempty"`
	AddressCity             string `json:"addressCity"`
	AddressRegion           string `json:"addressRegion"`
	AddressCountry          string `json:"addressCountry"`
	PostalCode              string `json:"postalCode"`
	DeliveryInstructions    string `json:"deliveryInstructions,omitempty"`
}

// OfficeAddresses groups the addresses of a single office.
type OfficeAddresses struct {
	MailingAddress  *Address `json:"mailingAddress,omitempty"`
	DeliveryAddress *Address `json:"deliveryAddress,omitempty"`
}

// IncorporationAddress is the addresses payload keyed by office.
type IncorporationAddress struct {
	RegisteredOffice *OfficeAddresses `json:"registeredOffice,omitempty"`
	RecordsOffice    *OfficeAddresses `json:"recordsOffice,omitempty"`
}

// Resolution is a special resolution recorded against a business.
type Resolution struct {
	ID             int64  `json:"id"`
	Type           string `json:"type"`
	Date           string `json:"date"`
	ResolutionText string `json:"resolution,omitempty"`
	SigningDate    string `json:"signingDate,omitempty"`
}

// RestorationType is the kind of restoration or reinstatement filing.
type RestorationType string

const (
	RestorationFull          RestorationType = "fullRestoration"
	RestorationLimited       RestorationType = "limitedRestoration"
	RestorationLimitedExtend RestorationType = "limitedRestorationExtension"
	RestorationToFull        RestorationType = "limitedRestorationToFull"
)
