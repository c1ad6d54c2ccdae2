package request

import "encoding/json"

// CreateOrderRequest keeps each ticket raw so malformed entries can be
// reported individually instead of failing the whole decode.
type CreateOrderRequest struct {
	Tickets []json.RawMessage `json:"tickets"`
}

type TicketRequest struct {
	MovieSession json.RawMessage `json:"movie_session"`
	Row          json.RawMessage `json:"row"`
	Seat         json.RawMessage `json:"seat"`
}
