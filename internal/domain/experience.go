package domain

// Experience is one bookable tour/activity as catalogued in the sheet.
// Field names mirror the sheet headers; pointer fields are tri-state
// (nil means the sheet never said).
type Experience struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	Category    string `json:"category,omitempty"`
	Season      string `json:"season,omitempty"`
	BookingType string `json:"bookingType,omitempty"` // instant|consult
	Difficulty  string `json:"difficulty,omitempty"`

	PriceAdultARS *float64 `json:"priceAdultARS"`
	PriceChildARS *float64 `json:"priceChildARS"`
	ChildAgeMin   *float64 `json:"childAgeMin"`
	ChildAgeMax   *float64 `json:"childAgeMax"`
	DurationHours *float64 `json:"durationHours"`
	DaysCount     *float64 `json:"daysCount"`
	MinPax        *float64 `json:"minPax"`
	MaxPax        *float64 `json:"maxPax"`

	IsActive   *bool `json:"isActive"`
	Refundable *bool `json:"refundable"`

	Language    []string `json:"language"`
	Includes    []string `json:"includes"`
	NotIncludes []string `json:"notIncludes"`
	Images      []string `json:"images"`
	Highlights  []string `json:"highlights"`

	ProviderName       string `json:"providerName,omitempty"`
	RefCodeProvider    string `json:"refCodeProvider,omitempty"`
	StartDate          string `json:"startDate,omitempty"`
	EndDate            string `json:"endDate,omitempty"`
	MeetingPoint       string `json:"meetingPoint,omitempty"`
	Schedule           string `json:"schedule,omitempty"`
	CancellationPolicy string `json:"cancellationPolicy,omitempty"`
	Description        string `json:"description,omitempty"`
	VideoURL           string `json:"videoUrl,omitempty"`
	MapURL             string `json:"mapUrl,omitempty"`
	NotesInternal      string `json:"notesInternal,omitempty"`
	CheckoutURL        string `json:"checkoutUrl,omitempty"`
}
