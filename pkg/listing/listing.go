package listing

import (
	"time"
)

type Category string

const (
	CategoryHouse Category = "house"
	CategoryRoom  Category = "room"
	CategorySeat  Category = "seat"
)

func (c Category) Valid() bool {
	return c == CategoryHouse || c == CategoryRoom || c == CategorySeat
}

// Amenities is the vocabulary offered by the listing form. Free text is
// accepted as well.
var Amenities = []string{
	"Wi-Fi", "AC", "Parking", "Security", "Housekeeping", "Kitchen",
	"Gym", "Swimming Pool", "Laundry", "Food", "Metro Access", "Bus Service",
	"Power Backup", "Water Supply", "CCTV", "Furnished",
}

type Listing struct {
	Id          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Type        Category `json:"type" yaml:"type"`
	Price       float64  `json:"price" yaml:"price"`
	Location    string   `json:"location" yaml:"location"`
	Area        float64  `json:"area" yaml:"area"`
	Amenities   []string `json:"amenities" yaml:"amenities"`
	Images      []string `json:"images" yaml:"images"`
	OwnerId     string   `json:"ownerId" yaml:"ownerId"`
	OwnerName   string   `json:"ownerName" yaml:"ownerName"`
	OwnerPhone  string   `json:"ownerPhone" yaml:"ownerPhone"`
	OwnerEmail  string   `json:"ownerEmail" yaml:"ownerEmail"`
	Available   bool     `json:"available" yaml:"available"`
	CreatedAt   string   `json:"createdAt" yaml:"createdAt"`
}

// CreatedAtLayout is the layout new listings are stamped with.
const CreatedAtLayout = "2006-01-02T15:04:05.000Z07:00"

var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseCreatedAt reads a stored creation timestamp. Values that match none of
// the known layouts are treated as the Unix epoch.
func ParseCreatedAt(value string) time.Time {
	for _, layout := range createdAtLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t
		}
	}
	return time.Unix(0, 0).UTC()
}

type SortKey string

const (
	SortByPrice SortKey = "price"
	SortByArea  SortKey = "area"
	SortByDate  SortKey = "date"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type Filter struct {
	Query     string
	Type      Category
	Location  string
	MinPrice  float64
	MaxPrice  float64
	MinArea   float64
	MaxArea   float64
	SortBy    SortKey
	SortOrder SortOrder
}

// DefaultFilter mirrors the initial state of the search view.
func DefaultFilter() Filter {
	return Filter{
		MinPrice:  0,
		MaxPrice:  100000,
		MinArea:   0,
		MaxArea:   5000,
		SortBy:    SortByDate,
		SortOrder: SortDesc,
	}
}

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation is the receipt of a mocked payment. It is not persisted.
type Reservation struct {
	PropertyId  string            `json:"propertyId"`
	UserId      string            `json:"userId"`
	Months      int               `json:"months"`
	TotalAmount float64           `json:"totalAmount"`
	Status      ReservationStatus `json:"status"`
}

// Reserve prices a stay of months at the listing's monthly rent.
func Reserve(l Listing, userId string, months int) Reservation {
	return Reservation{
		PropertyId:  l.Id,
		UserId:      userId,
		Months:      months,
		TotalAmount: l.Price * float64(months),
		Status:      ReservationConfirmed,
	}
}
