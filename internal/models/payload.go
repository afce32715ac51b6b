package models

// IdentityInsert is the payload for creating an identity row.
// ID, Handle and Name are required. Fingerprint is informational.
type IdentityInsert struct {
	ID          int64  `json:"id"`
	Handle      string `json:"handle"`
	Name        string `json:"name"`
	TrustScore  int64  `json:"trust_score"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// IdentityUpdate is the payload for updating the mutable fields of an
// existing row. Name is required.
//
// TrustScore is optional; when set the store raises the score to at least that
// value and never lowers it. Positive judgments go through the store's atomic
// increment instead.
type IdentityUpdate struct {
	Name       string `json:"name"`
	TrustScore *int64 `json:"trust_score,omitempty"`
}
