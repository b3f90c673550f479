package prescription

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected:
		return true
	}
	return false
}

type Prescription struct {
	ID          string    `json:"id"`
	UserID      uint      `json:"user_id"`
	UserName    string    `json:"user_name,omitempty"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Status      Status    `json:"status"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Upload is a document received from a client.
type Upload struct {
	UserID           uint
	OriginalFilename string
	ContentType      string
	Data             []byte
}

type UploadResult struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
}

// Document is a stored file read back for download.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}
