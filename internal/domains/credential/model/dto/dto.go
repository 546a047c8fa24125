package dto

import (
	bookingModel "rendezvous/internal/domains/booking/model"
	"rendezvous/internal/domains/credential/model"
	"rendezvous/shared/base64"
	"rendezvous/shared/constant"
)

type CredentialResponse struct {
	BookingID  int64  `json:"booking_id"`
	UniqueCode string `json:"unique_code"`
	URL        string `json:"url"`
	Image      string `json:"image"`
	Payload    string `json:"payload"`
}

func (r *CredentialResponse) FromModel(booking bookingModel.Booking, artifact model.Artifact, image []byte) error {
	payload, err := booking.Payload().Encode()
	if err != nil {
		return err //nolint:wrapcheck
	}

	r.BookingID = booking.ID
	r.UniqueCode = booking.UniqueCode
	r.URL = artifact.URL
	r.Image = base64.DataURI(constant.ContentTypePNG, image)
	r.Payload = string(payload)

	return nil
}

type RegenerateResponse struct {
	Scanned     int `json:"scanned"`
	Regenerated int `json:"regenerated"`
	Failed      int `json:"failed"`
}

func (r *RegenerateResponse) FromModel(result model.SweepResult) {
	r.Scanned = result.Scanned
	r.Regenerated = result.Regenerated
	r.Failed = result.Failed
}
