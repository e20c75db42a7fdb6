// internal/workers/listing/send-inquiry-notification/models.go
package sendinquirynotification

type Input struct {
	PropertyID       string                 `json:"propertyId"`
	PropertyTitle    string                 `json:"propertyTitle"`
	OwnerID          string                 `json:"ownerId"`
	InquirerName     string                 `json:"inquirerName"`
	InquirerEmail    string                 `json:"inquirerEmail,omitempty"`
	InquirerPhone    string                 `json:"inquirerPhone,omitempty"`
	Message          string                 `json:"message,omitempty"`
	NotificationType string                 `json:"notificationType"`
	Priority         string                 `json:"priority,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent", "failed", "disabled"
	SentAt         string `json:"sentAt"` // ISO 8601
}

// Notification types
const (
	TypeNewInquiry  = "new_inquiry"
	TypeTourRequest = "tour_request"
)

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)
