package request

type SessionFilterRequest struct {
	Movie string `json:"movie" validate:"omitempty,number"`
	Date  string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}
