package dto

import (
	"haunters/internal/domains/earnings/model"
	"haunters/shared"
	gDto "haunters/shared/dto"
)

type EarningsResponse struct {
	ID        string  `json:"id"`
	HunterID  string  `json:"hunter_id"`
	BookingID string  `json:"booking_id"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	gDto.Metadata
}

func (r *EarningsResponse) FromModel(model model.HunterEarnings) {
	r.ID = model.ID
	r.HunterID = model.HunterID
	r.BookingID = model.BookingID
	r.Amount = model.Amount
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetEarningsResponse struct {
	Earnings       []EarningsResponse `json:"earnings"`
	TotalPending   float64            `json:"total_pending"`
	TotalWithdrawn float64            `json:"total_withdrawn"`
	TotalEarned    float64            `json:"total_earned"`
	TotalPage      int                `json:"total_page"`
	TotalData      int                `json:"total_data"`
}

func (r *GetEarningsResponse) FromModels(models []model.HunterEarnings, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Earnings = make([]EarningsResponse, len(models))
	for i, mod := range models {
		r.Earnings[i].FromModel(mod)

		r.TotalEarned += mod.Amount

		if mod.Status == model.StatusWithdrawn {
			r.TotalWithdrawn += mod.Amount
		} else {
			r.TotalPending += mod.Amount
		}
	}
}

type WithdrawResponse struct {
	Withdrawn int     `json:"withdrawn"`
	Amount    float64 `json:"amount"`
}
