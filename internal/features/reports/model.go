package reports

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnonymousReporter is used when the identity carries neither a name nor an address
const AnonymousReporter = "Anonymous"

// Report is a found-item report. Reports are append-only.
type Report struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ItemName         string             `bson:"itemName" json:"itemName"`
	FoundLocation    string             `bson:"foundLocation" json:"foundLocation"`
	RetrieveLocation string             `bson:"retrieveLocation" json:"retrieveLocation"`
	Details          string             `bson:"details,omitempty" json:"details,omitempty"`
	ImageURL         string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	ReporterName     string             `bson:"reporterName" json:"reporterName"`
	ReporterID       string             `bson:"reporterId" json:"reporterId"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

// SubmitForm carries the user-entered report fields
type SubmitForm struct {
	ItemName         string `json:"itemName" form:"itemName"`
	FoundLocation    string `json:"foundLocation" form:"foundLocation"`
	RetrieveLocation string `json:"retrieveLocation" form:"retrieveLocation"`
	Details          string `json:"details" form:"details"`
}

// MeResponse is returned by GET /reports/me
type MeResponse struct {
	Subject      string `json:"subject"`
	Provider     string `json:"provider"`
	ReporterName string `json:"reporterName"`
}
