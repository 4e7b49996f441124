// AngelaMos | 2026
// entity.go

package asset

import (
	"time"
)

// Logo is a client-gallery upload. The filename is server-generated and
// collision-resistant; the backing file lives in the gallery bucket.
type Logo struct {
	ID          string    `db:"id"           json:"id"`
	Filename    string    `db:"filename"     json:"filename"`
	ClientName  string    `db:"client_name"  json:"client_name"`
	SizeBytes   int64     `db:"size_bytes"   json:"size_bytes"`
	ContentHash string    `db:"content_hash" json:"content_hash"`
	UploadDate  time.Time `db:"upload_date"  json:"upload_date"`
}

// CompanyLogo rows are never deleted, only deactivated. At most one row is
// active at any time; the storage layer enforces this with a partial unique
// index.
type CompanyLogo struct {
	ID         string    `db:"id"          json:"id"`
	Filename   string    `db:"filename"    json:"filename"`
	IsActive   bool      `db:"is_active"   json:"is_active"`
	UploadDate time.Time `db:"upload_date" json:"upload_date"`
}
