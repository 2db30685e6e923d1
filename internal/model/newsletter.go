package model

// Subscriber is a newsletter subscription record.
type Subscriber struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	IsActive       bool   `json:"is_active"`
	SubscribedAt   Time   `json:"subscribed_at"`
	UnsubscribedAt Time   `json:"unsubscribed_at"`
}

// SubscribeRequest is the payload for subscribe and unsubscribe.
type SubscribeRequest struct {
	Email string `json:"email"`
}

// NewsletterResponse is returned by subscribe and unsubscribe.
type NewsletterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UploadResponse is returned by the upload endpoint.
type UploadResponse struct {
	URL string `json:"url"`
}
