package api

import "github.com/voyago-app/voyago-cli/session"

// FlightStatus mirrors the server's vol status enum.
type FlightStatus string

const (
	FlightAvailable FlightStatus = "DISPONIBLE"
	FlightFull      FlightStatus = "COMPLET"
	FlightCanceled  FlightStatus = "ANNULE"
)

// Flight is a vol on the wire. Timestamps are the server's local ISO
// strings and are passed through verbatim.
type Flight struct {
	ID               int64        `json:"id,omitempty"`
	Number           string       `json:"numeroVol"`
	Airline          string       `json:"compagnie"`
	DepartureAirport string       `json:"aeroportDepart"`
	ArrivalAirport   string       `json:"aeroportArrivee"`
	DepartureTime    string       `json:"dateHeureDepart"`
	ArrivalTime      string       `json:"dateHeureArrivee"`
	SeatsAvailable   int          `json:"placesDisponibles"`
	BasePrice        float64      `json:"prixBase"`
	Status           FlightStatus `json:"statut"`
}

type Hotel struct {
	ID             int64    `json:"id,omitempty"`
	Name           string   `json:"nom"`
	Address        string   `json:"adresse"`
	City           string   `json:"ville"`
	Country        string   `json:"pays"`
	Stars          int      `json:"etoiles"`
	PricePerNight  float64  `json:"prixParNuit"`
	RoomsTotal     int      `json:"chambresTotales"`
	RoomsAvailable int      `json:"chambresDisponibles"`
	Description    string   `json:"description,omitempty"`
	Amenities      []string `json:"equipements"`
}

type ReservationType string

const (
	ReservationFlight ReservationType = "VOL"
	ReservationHotel  ReservationType = "HOTEL"
)

type ReservationStatus string

const (
	ReservationPendingPayment ReservationStatus = "PENDING_PAYMENT"
	ReservationConfirmed      ReservationStatus = "CONFIRMED"
	ReservationCanceled       ReservationStatus = "CANCELED"
)

// Reservation is the client-facing reservation row; flight and hotel fields
// are populated according to Type.
type Reservation struct {
	ID         int64             `json:"id"`
	Type       ReservationType   `json:"type"`
	Status     ReservationStatus `json:"status"`
	TotalPrice float64           `json:"totalPrice"`
	CreatedAt  string            `json:"createdAt"`

	FlightID         int64  `json:"volId,omitempty"`
	FlightInfo       string `json:"volInfo,omitempty"`
	Seats            int    `json:"nbPlaces,omitempty"`
	ReturnFlightID   int64  `json:"volRetourId,omitempty"`
	ReturnFlightInfo string `json:"volRetourInfo,omitempty"`

	HotelID   int64  `json:"hotelId,omitempty"`
	HotelName string `json:"hotelName,omitempty"`
	CheckIn   string `json:"checkIn,omitempty"`
	CheckOut  string `json:"checkOut,omitempty"`
	Rooms     int    `json:"rooms,omitempty"`

	PaymentID     int64  `json:"paymentId,omitempty"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
}

type ReserveFlightRequest struct {
	FlightID       int64  `json:"volId"`
	Seats          int    `json:"nbPlaces"`
	ReturnFlightID *int64 `json:"volRetourId,omitempty"`
}

type ReserveHotelRequest struct {
	HotelID  int64  `json:"hotelId"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Rooms    int    `json:"rooms"`
}

type PaymentMethod string

const (
	PaymentCard        PaymentMethod = "CARD"
	PaymentCash        PaymentMethod = "CASH"
	PaymentMobileMoney PaymentMethod = "MOBILE_MONEY"
)

type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "PAID"
	PaymentFailed PaymentStatus = "FAILED"
)

type PayRequest struct {
	Method  PaymentMethod `json:"method"`
	Success bool          `json:"success"`
}

type Payment struct {
	ID        int64         `json:"id,omitempty"`
	Reference string        `json:"reference,omitempty"`
	Amount    float64       `json:"amount"`
	Method    PaymentMethod `json:"method"`
	Status    PaymentStatus `json:"status"`
	CreatedAt string        `json:"createdAt,omitempty"`
}

type User struct {
	ID        int64        `json:"id"`
	FullName  string       `json:"fullName"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone,omitempty"`
	Role      session.Role `json:"role"`
	Enabled   bool         `json:"enabled"`
	CreatedAt string       `json:"createdAt,omitempty"`
}

type UserCreateRequest struct {
	FullName string       `json:"fullName"`
	Email    string       `json:"email"`
	Password string       `json:"password"`
	Role     session.Role `json:"role"`
	Enabled  *bool        `json:"enabled,omitempty"`
}

// UserUpdateRequest carries only the fields to change; nil fields are left
// untouched server-side.
type UserUpdateRequest struct {
	FullName *string       `json:"fullName,omitempty"`
	Email    *string       `json:"email,omitempty"`
	Password *string       `json:"password,omitempty"`
	Role     *session.Role `json:"role,omitempty"`
	Enabled  *bool         `json:"enabled,omitempty"`
}

// AdminReservationRow is the admin view of a reservation, denormalized with
// the owning client.
type AdminReservationRow struct {
	Ref         string            `json:"ref"`
	ID          int64             `json:"id"`
	ClientName  string            `json:"clientName"`
	ClientEmail string            `json:"clientEmail"`
	Type        ReservationType   `json:"type"`
	CreatedAt   string            `json:"createdAt"`
	Amount      float64           `json:"amount"`
	Status      ReservationStatus `json:"status"`
}

type MonthPoint struct {
	Month   string  `json:"month"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type LabelValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type TopClient struct {
	ClientID          int64   `json:"clientId"`
	ClientName        string  `json:"clientName"`
	ClientEmail       string  `json:"clientEmail"`
	ReservationsCount int     `json:"reservationsCount"`
	RevenueConfirmed  float64 `json:"revenueConfirmed"`
}

type ReservationStats struct {
	TotalCount int `json:"totalCount"`
	VolCount   int `json:"volCount"`
	HotelCount int `json:"hotelCount"`

	PendingCount   int `json:"pendingCount"`
	ConfirmedCount int `json:"confirmedCount"`
	CanceledCount  int `json:"canceledCount"`

	CancelRatePercent     float64 `json:"cancelRatePercent"`
	RevenueConfirmedTotal float64 `json:"revenueConfirmedTotal"`

	Monthly    []MonthPoint `json:"monthly"`
	ByType     []LabelValue `json:"byType"`
	ByStatus   []LabelValue `json:"byStatus"`
	TopClients []TopClient  `json:"topClients"`
}
