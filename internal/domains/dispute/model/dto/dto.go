package dto

import (
	"encoding/json"
	"time"

	"haunters/internal/domains/dispute/model"
	"haunters/shared"
	gDto "haunters/shared/dto"
)

type CreateDisputeRequest struct {
	BookingID    string   `json:"booking_id"    validate:"required"`
	Title        string   `json:"title"         validate:"required,max=200"`
	Description  string   `json:"description"   validate:"required,max=2000"`
	Category     string   `json:"category"      validate:"required,oneof=MISREPRESENTATION NO_SHOW_HUNTER NO_SHOW_TENANT VIEWING_ISSUE PAYMENT_ISSUE OTHER"`
	EvidenceKeys []string `json:"evidence_keys" validate:"omitempty,max=10"`
}

type UploadEvidenceRequest struct {
	FileName string `json:"file_name" validate:"required,max=200"`
	File     string `json:"file"      validate:"required"`
}

type UploadEvidenceResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type RespondDisputeRequest struct {
	Response string `json:"response" validate:"required,max=2000"`
}

type ResolveDisputeRequest struct {
	Resolution string `json:"resolution" validate:"required,max=2000"`
	Action     string `json:"action"     validate:"required,oneof=REFUND RELEASE_PAYMENT NONE"`
}

type DisputeResponse struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	ReporterID     string     `json:"reporter_id"`
	AgainstID      string     `json:"against_id"`
	BookingID      string     `json:"booking_id"`
	PropertyID     string     `json:"property_id"`
	Status         string     `json:"status"`
	Resolution     *string    `json:"resolution,omitempty"`
	ResolvedBy     *string    `json:"resolved_by,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	HunterResponse *string    `json:"hunter_response,omitempty"`
	EvidenceKeys   []string   `json:"evidence_keys,omitempty"`
	EvidenceURLs   []string   `json:"evidence_urls,omitempty"`
	gDto.Metadata
}

func (r *DisputeResponse) FromModel(model model.Dispute) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.Category = model.Category
	r.ReporterID = model.ReporterID
	r.AgainstID = model.AgainstID
	r.BookingID = model.BookingID
	r.PropertyID = model.PropertyID
	r.Status = model.Status
	r.Resolution = model.Resolution
	r.ResolvedBy = model.ResolvedBy
	r.ResolvedAt = model.ResolvedAt
	r.HunterResponse = model.HunterResponse

	if model.EvidenceKeys != nil {
		if err := json.Unmarshal([]byte(*model.EvidenceKeys), &r.EvidenceKeys); err != nil {
			r.EvidenceKeys = []string{*model.EvidenceKeys}
		}
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetDisputesResponse struct {
	Disputes  []DisputeResponse `json:"disputes"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetDisputesResponse) FromModels(models []model.Dispute, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Disputes = make([]DisputeResponse, len(models))
	for i, mod := range models {
		r.Disputes[i].FromModel(mod)
	}
}
