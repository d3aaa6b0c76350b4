package core

import "time"

// Platform DTOs for the feature services. These mirror the REST API payloads
// and carry no behavior.

// PersonRef is the compact user reference embedded in platform payloads
// (event creators, outing organizers, chat senders, reviewers).
type PersonRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role,omitempty"`
}

// Event is a platform event a business publishes for users to browse.
type Event struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	EventDate   time.Time  `json:"eventDate"`
	Creator     *PersonRef `json:"creator,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// CreateEventInput is the payload for creating or updating an event.
type CreateEventInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	EventDate   time.Time `json:"eventDate"`
}

// EventRef is the compact event reference embedded in outings.
type EventRef struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	EventDate time.Time `json:"eventDate"`
}

// Outing is a user-organized meetup attached to an event.
type Outing struct {
	ID                  string      `json:"id"`
	Title               string      `json:"title"`
	Description         string      `json:"description"`
	Location            string      `json:"location"`
	Latitude            float64     `json:"latitude"`
	Longitude           float64     `json:"longitude"`
	OutingDate          time.Time   `json:"outingDate"`
	MaxParticipants     int         `json:"maxParticipants"`
	CurrentParticipants int         `json:"currentParticipants"`
	Participants        []PersonRef `json:"participants,omitempty"`
	IsParticipant       bool        `json:"isParticipant"`
	IsFull              bool        `json:"isFull"`
	Organizer           *PersonRef  `json:"organizer,omitempty"`
	Event               *EventRef   `json:"event,omitempty"`
	CreatedAt           time.Time   `json:"createdAt"`
}

// CreateOutingInput is the payload for creating an outing.
type CreateOutingInput struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Location        string    `json:"location"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	OutingDate      time.Time `json:"outingDate"`
	MaxParticipants int       `json:"maxParticipants"`
	EventID         string    `json:"eventId"`
}

// VoucherStatus is the lifecycle state of a voucher.
type VoucherStatus string

const (
	VoucherActive   VoucherStatus = "ACTIVE"
	VoucherRedeemed VoucherStatus = "REDEEMED"
	VoucherExpired  VoucherStatus = "EXPIRED"
)

// RewardRef is the compact reward reference embedded in vouchers.
type RewardRef struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Business    *PersonRef `json:"business,omitempty"`
}

// Voucher is a redeemable reward issued to a user after an outing.
type Voucher struct {
	ID            string        `json:"id"`
	QRCode        string        `json:"qrCode"`
	Status        VoucherStatus `json:"status"`
	Reward        *RewardRef    `json:"reward,omitempty"`
	Outing        *EventRef     `json:"outing,omitempty"`
	IssuedAt      time.Time     `json:"issuedAt"`
	RedeemedAt    *time.Time    `json:"redeemedAt,omitempty"`
	ExpiresAt     *time.Time    `json:"expiresAt,omitempty"`
	CanBeRedeemed bool          `json:"canBeRedeemed"`
}

// Reward is a business-sponsored prize attached to an event.
type Reward struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	RequiredParticipants int        `json:"requiredParticipants"`
	QRCode               string     `json:"qrCode"`
	EventID              string     `json:"eventId"`
	EventTitle           string     `json:"eventTitle"`
	Business             *PersonRef `json:"business,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
}

// CreateRewardInput is the payload for creating a reward.
type CreateRewardInput struct {
	Title                string `json:"title"`
	Description          string `json:"description"`
	RequiredParticipants int    `json:"requiredParticipants"`
	EventID              string `json:"eventId"`
}

// Notification is a platform notification delivered to the signed-in user.
type Notification struct {
	ID                string     `json:"id"`
	Type              string     `json:"type"`
	Title             string     `json:"title"`
	Message           string     `json:"message"`
	RelatedEntityID   string     `json:"relatedEntityId,omitempty"`
	RelatedEntityType string     `json:"relatedEntityType,omitempty"`
	Read              bool       `json:"read"`
	ReadAt            *time.Time `json:"readAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// Review is a rating left for an event or outing.
type Review struct {
	ID        string     `json:"id"`
	Reviewer  *PersonRef `json:"reviewer,omitempty"`
	EventID   string     `json:"eventId,omitempty"`
	OutingID  string     `json:"outingId,omitempty"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CreateReviewInput is the payload for creating a review.
type CreateReviewInput struct {
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	EventID  string `json:"eventId,omitempty"`
	OutingID string `json:"outingId,omitempty"`
}

// ReportStatus is the moderation state of a user report.
type ReportStatus string

const (
	ReportPending   ReportStatus = "PENDING"
	ReportReviewed  ReportStatus = "REVIEWED"
	ReportDismissed ReportStatus = "DISMISSED"
)

// Report is a user-filed moderation report.
type Report struct {
	ID                string       `json:"id"`
	Reporter          *PersonRef   `json:"reporter,omitempty"`
	ReportedUser      *PersonRef   `json:"reportedUser,omitempty"`
	Type              string       `json:"type"`
	Reason            string       `json:"reason"`
	RelatedEntityID   string       `json:"relatedEntityId,omitempty"`
	RelatedEntityType string       `json:"relatedEntityType,omitempty"`
	Status            ReportStatus `json:"status"`
	CreatedAt         time.Time    `json:"createdAt"`
	ReviewedAt        *time.Time   `json:"reviewedAt,omitempty"`
	ReviewedBy        *PersonRef   `json:"reviewedBy,omitempty"`
}

// CreateReportInput is the payload for filing a report.
type CreateReportInput struct {
	ReportedUserID    string `json:"reportedUserId"`
	Type              string `json:"type"`
	Reason            string `json:"reason"`
	RelatedEntityID   string `json:"relatedEntityId,omitempty"`
	RelatedEntityType string `json:"relatedEntityType,omitempty"`
}

// ChatInfo identifies the chat attached to an outing. The chat ID is the
// subscription key for the realtime topics.
type ChatInfo struct {
	ChatID   string `json:"chatId"`
	OutingID string `json:"outingId"`
}

// ChatMessage is a single chat message, delivered both over the realtime
// topic and from the history endpoint.
type ChatMessage struct {
	ID        string     `json:"id"`
	ChatID    string     `json:"chatId"`
	Sender    *PersonRef `json:"sender,omitempty"`
	Content   string     `json:"content"`
	Timestamp time.Time  `json:"timestamp"`
}

// TypingEvent signals that a user started or stopped typing in a chat.
type TypingEvent struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

// AdminStats is the platform-wide counter snapshot shown on the admin
// dashboard.
type AdminStats struct {
	TotalUsers       int `json:"totalUsers"`
	BannedUsers      int `json:"bannedUsers"`
	TotalEvents      int `json:"totalEvents"`
	TotalOutings     int `json:"totalOutings"`
	TotalVouchers    int `json:"totalVouchers"`
	PendingReports   int `json:"pendingReports"`
	ActiveUsersToday int `json:"activeUsersToday"`
}

// LocationSuggestion is a geocoding result from the map provider.
type LocationSuggestion struct {
	DisplayName string  `json:"displayName"`
	Latitude    string  `json:"latitude"`
	Longitude   string  `json:"longitude"`
	Type        string  `json:"type"`
	Importance  float64 `json:"importance"`
}
