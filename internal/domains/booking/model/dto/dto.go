package dto

import (
	"fmt"

	"roombook/internal/domains/booking/model"
	"roombook/shared/constant"
	"roombook/shared/failure"
)

type CreateBookingRequest struct {
	CustomerName string `json:"customerName" validate:"required,notblank,max=100"`
	Date         string `json:"date"         validate:"required,datetime=2006-01-02"`
	StartTime    string `json:"startTime"    validate:"required,datetime=15:04"`
	EndTime      string `json:"endTime"      validate:"required,datetime=15:04"`
	RoomID       int64  `json:"roomId"       validate:"required,gt=0"`
}

// ToModel parses the request into an unconfirmed booking. The interval must
// have positive length, zero or negative intervals are rejected.
func (c *CreateBookingRequest) ToModel() (model.Booking, error) {
	date, err := model.ParseDay(c.Date)
	if err != nil {
		return model.Booking{}, failure.BadRequest(err) // nolint:wrapcheck
	}

	startTime, err := model.ParseTimeOfDay(c.StartTime)
	if err != nil {
		return model.Booking{}, failure.BadRequest(err) // nolint:wrapcheck
	}

	endTime, err := model.ParseTimeOfDay(c.EndTime)
	if err != nil {
		return model.Booking{}, failure.BadRequest(err) // nolint:wrapcheck
	}

	if !endTime.After(startTime.Time) {
		return model.Booking{}, failure.BadRequestFromString(
			fmt.Sprintf("endTime %s must be after startTime %s", c.EndTime, c.StartTime),
		) // nolint:wrapcheck
	}

	return model.Booking{
		RoomID:       c.RoomID,
		CustomerName: c.CustomerName,
		Date:         date,
		StartTime:    startTime,
		EndTime:      endTime,
	}, nil
}

type BookingResponse struct {
	ID            int64  `json:"id"`
	CustomerName  string `json:"customerName"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	RoomID        int64  `json:"roomId"`
	BookingDate   string `json:"bookingDate"`
	BookingStatus string `json:"bookingStatus"`
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.CustomerName = model.CustomerName
	r.Date = model.Date.String()
	r.StartTime = model.StartTime.String()
	r.EndTime = model.EndTime.String()
	r.RoomID = model.RoomID
	r.BookingDate = model.BookingDate.Format(constant.DateFormat)
	r.BookingStatus = model.BookingStatus
}

func FromModels(models []model.Booking) []BookingResponse {
	res := make([]BookingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
