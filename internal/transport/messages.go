package transport

import "github.com/dmitrijs2005/trustvote/internal/models"

// Empty is the response of calls that only report success.
type Empty struct{}

type ListIdentitiesRequest struct{}

type ListIdentitiesResponse struct {
	Identities []models.Identity `json:"identities"`
}

type FindByHandleRequest struct {
	Handle string `json:"handle"`
}

type FindByHandleResponse struct {
	Identity models.Identity `json:"identity"`
}

type InsertIdentityRequest struct {
	Identity models.IdentityInsert `json:"identity"`
}

type InsertIdentityResponse struct {
	ID int64 `json:"id"`
}

type UpdateIdentityRequest struct {
	ID     int64                 `json:"id"`
	Update models.IdentityUpdate `json:"update"`
}

type IncrementTrustRequest struct {
	ID    int64 `json:"id"`
	Delta int64 `json:"delta"`
}

type IncrementTrustResponse struct {
	TrustScore int64 `json:"trust_score"`
}

type ListVotesRequest struct {
	VoterHandle string `json:"voter_handle"`
}

type ListVotesResponse struct {
	Votes []models.Vote `json:"votes"`
}

type InsertVoteRequest struct {
	Vote models.Vote `json:"vote"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

// PresignPassportRequest asks for a one-shot upload slot for a rendered
// passport image owned by Handle.
type PresignPassportRequest struct {
	Handle      string `json:"handle"`
	ContentType string `json:"content_type"`
}

type PresignPassportResponse struct {
	Key         string `json:"key"`
	UploadURL   string `json:"upload_url"`
	DownloadURL string `json:"download_url"`
}
