package submission

import "errors"

// Activity types accepted by the submission service.
const (
	ActivityImport   = "IMPORT"
	ActivityExport   = "EXPORT"
	ActivityDomestic = "DOMESTIC"
	ActivityTrade    = "TRADE"
)

var (
	// ErrMissingInternalReference is returned when a statement has no
	// internal reference number.
	ErrMissingInternalReference = errors.New("internalReferenceNumber is required")
	// ErrMissingActivityType is returned when a statement has no
	// activity type.
	ErrMissingActivityType = errors.New("activityType is required")
	// ErrNoCommodities is returned when a statement lists no commodities.
	ErrNoCommodities = errors.New("at least one commodity is required")
	// ErrMissingIdentifier is returned by amend and retract when the DDS
	// identifier is empty.
	ErrMissingIdentifier = errors.New("ddsIdentifier is required")
)

// Operator identifies the company responsible for the statement.
type Operator struct {
	// IdentifierType is the registration scheme, typically "eori".
	IdentifierType  string
	IdentifierValue string
	Name            string
	Country         string
	Address         string
}

// SpeciesInfo names a plant or timber species covered by a commodity.
type SpeciesInfo struct {
	ScientificName string
	CommonName     string
}

// Commodity is one line of goods covered by a statement.
type Commodity struct {
	// HSHeading is the Harmonized System code of the goods.
	HSHeading          string
	DescriptionOfGoods string
	// NetWeight is the net mass in kilograms.
	NetWeight float64
	Species   []SpeciesInfo
	// Geometry is the base64-encoded GeoJSON describing the plots of
	// production.
	Geometry string
}

// Statement is a Due Diligence Statement to submit.
type Statement struct {
	InternalReferenceNumber string
	ActivityType            string
	Operator                Operator
	CountryOfActivity       string
	BorderCrossCountry      string
	Commodities             []Commodity
	// GeoLocationConfidential requests that plot geometry not be
	// disclosed to the public.
	GeoLocationConfidential bool
}

// Validate checks the statement for the mistakes the service would
// reject anyway, before any network traffic.
func (s *Statement) Validate() error {
	if s.InternalReferenceNumber == "" {
		return ErrMissingInternalReference
	}
	if s.ActivityType == "" {
		return ErrMissingActivityType
	}
	if len(s.Commodities) == 0 {
		return ErrNoCommodities
	}
	return nil
}
