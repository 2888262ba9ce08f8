package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"haunters/internal/domains/viewing/model"
	"haunters/shared"
	gDto "haunters/shared/dto"
	gModel "haunters/shared/model"
	"haunters/shared/timezone"
)

type CreateViewingRequest struct {
	PropertyID    string   `json:"property_id"    validate:"required"`
	Package       string   `json:"package"        validate:"required,oneof=STANDARD PREMIUM"`
	ProposedDates []string `json:"proposed_dates" validate:"required,min=1,max=5"`
	Message       string   `json:"message"        validate:"omitempty,max=2000"`
}

func (c *CreateViewingRequest) ToModel(user string) (model.ViewingRequest, error) {
	for _, slot := range c.ProposedDates {
		if _, err := time.Parse(model.ScheduleLayout, slot); err != nil {
			return model.ViewingRequest{}, err
		}
	}

	proposedDates, err := json.Marshal(c.ProposedDates)
	if err != nil {
		return model.ViewingRequest{}, err
	}

	return model.ViewingRequest{
		ID:            uuid.NewString(),
		PropertyID:    c.PropertyID,
		TenantID:      user,
		Package:       c.Package,
		ProposedDates: string(proposedDates),
		Message:       c.Message,
		Status:        model.StatusPending,
		PaymentStatus: model.PaymentUnpaid,
		InvoiceAmount: model.PackagePrice(c.Package),
		InvoiceStatus: model.InvoicePending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type RespondViewingRequest struct {
	Action       string   `json:"action"        validate:"required,oneof=accept reject counter"`
	CounterDates []string `json:"counter_dates" validate:"required_if=Action counter,omitempty,min=1,max=5"`
	Message      string   `json:"message"       validate:"omitempty,max=2000"`
}

type ViewingRequestResponse struct {
	ID            string   `json:"id"`
	PropertyID    string   `json:"property_id"`
	TenantID      string   `json:"tenant_id"`
	HunterID      string   `json:"hunter_id"`
	Package       string   `json:"package"`
	ProposedDates []string `json:"proposed_dates"`
	Message       string   `json:"message"`
	Status        string   `json:"status"`
	PaymentStatus string   `json:"payment_status"`
	InvoiceAmount float64  `json:"invoice_amount"`
	InvoiceStatus string   `json:"invoice_status"`
	gDto.Metadata
}

func (r *ViewingRequestResponse) FromModel(model model.ViewingRequest) {
	r.ID = model.ID
	r.PropertyID = model.PropertyID
	r.TenantID = model.TenantID
	r.HunterID = model.HunterID
	r.Package = model.Package
	r.Message = model.Message
	r.Status = model.Status
	r.PaymentStatus = model.PaymentStatus
	r.InvoiceAmount = model.InvoiceAmount
	r.InvoiceStatus = model.InvoiceStatus

	if err := json.Unmarshal([]byte(model.ProposedDates), &r.ProposedDates); err != nil {
		r.ProposedDates = []string{}
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetViewingRequestsResponse struct {
	ViewingRequests []ViewingRequestResponse `json:"viewing_requests"`
	TotalPage       int                      `json:"total_page"`
	TotalData       int                      `json:"total_data"`
}

func (r *GetViewingRequestsResponse) FromModels(models []model.ViewingRequest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.ViewingRequests = make([]ViewingRequestResponse, len(models))
	for i, mod := range models {
		r.ViewingRequests[i].FromModel(mod)
	}
}
