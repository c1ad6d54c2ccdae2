package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/pkg/utils"
)

// HallResolver maps movie sessions to the hall they are played in. Unknown
// sessions are absent from the result.
type HallResolver interface {
	FindHallsBySessionIDs(ctx context.Context, ids []int64) (map[int64]*entity.CinemaHall, error)
}

// SeatRequest is one parsed ticket request. Index is its position in the
// submitted list.
type SeatRequest struct {
	Index          int
	MovieSessionID int64
	Row            int
	Seat           int
}

func (r SeatRequest) Coordinate() entity.SeatPosition {
	return entity.SeatPosition{Row: r.Row, Seat: r.Seat}
}

func (r SeatRequest) Ref() SeatRef {
	return SeatRef{MovieSession: r.MovieSessionID, Row: r.Row, Seat: r.Seat}
}

// SessionGroup is the part of a request targeting one movie session.
type SessionGroup struct {
	SessionID int64
	Hall      *entity.CinemaHall
	Seats     []SeatRequest
}

// Rows returns the distinct rows requested in the group, ascending.
func (g *SessionGroup) Rows() []int {
	seen := make(map[int]struct{}, len(g.Seats))
	rows := make([]int, 0, len(g.Seats))
	for _, s := range g.Seats {
		if _, ok := seen[s.Row]; ok {
			continue
		}
		seen[s.Row] = struct{}{}
		rows = append(rows, s.Row)
	}
	sort.Ints(rows)
	return rows
}

// ReservationPlan is a validated request ready to be committed.
type ReservationPlan struct {
	// Seats in submission order.
	Seats []SeatRequest
	// Groups ordered by session id.
	Groups []*SessionGroup
}

func (p *ReservationPlan) SessionIDs() []int64 {
	ids := make([]int64, len(p.Groups))
	for i, g := range p.Groups {
		ids[i] = g.SessionID
	}
	return ids
}

// ReservationValidator checks an order request before any write happens:
// shape, duplicates within the batch, session existence and hall bounds.
// Seats already sold are only checked at commit time.
type ReservationValidator struct {
	halls HallResolver
}

func NewReservationValidator(halls HallResolver) *ReservationValidator {
	return &ReservationValidator{halls: halls}
}

func (v *ReservationValidator) Validate(ctx context.Context, tickets []json.RawMessage) (*ReservationPlan, error) {
	seats, err := ParseSeatRequests(tickets)
	if err != nil {
		return nil, err
	}

	groups, err := GroupBySession(seats)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(groups))
	for i, g := range groups {
		ids[i] = g.SessionID
	}

	halls, err := v.halls.FindHallsBySessionIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve cinema halls: %w", err)
	}

	var unknown []int64
	for _, g := range groups {
		hall, ok := halls[g.SessionID]
		if !ok || hall == nil {
			unknown = append(unknown, g.SessionID)
			continue
		}
		g.Hall = hall
	}
	if len(unknown) > 0 {
		return nil, &ValidationError{Kind: KindUnknownSession, SessionIDs: unknown}
	}

	if err := CheckBounds(groups); err != nil {
		return nil, err
	}

	return &ReservationPlan{Seats: seats, Groups: groups}, nil
}

// ParseSeatRequests decodes every ticket entry. All malformed entries are
// reported together.
func ParseSeatRequests(tickets []json.RawMessage) ([]SeatRequest, error) {
	if len(tickets) == 0 {
		return nil, &ValidationError{Kind: KindEmpty}
	}

	seats := make([]SeatRequest, 0, len(tickets))
	var issues []FieldIssue

	for i, raw := range tickets {
		seat, fields := parseSeatRequest(raw)
		if len(fields) > 0 {
			issues = append(issues, FieldIssue{Index: i, Fields: fields})
			continue
		}
		seat.Index = i
		seats = append(seats, seat)
	}

	if len(issues) > 0 {
		return nil, &ValidationError{Kind: KindMalformed, Issues: issues}
	}

	return seats, nil
}

func parseSeatRequest(raw json.RawMessage) (SeatRequest, map[string]string) {
	var ticket request.TicketRequest
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' || json.Unmarshal(trimmed, &ticket) != nil {
		return SeatRequest{}, map[string]string{
			"ticket": "Each ticket must have integer 'row', 'seat' and 'movie_session'",
		}
	}

	fields := make(map[string]string)
	parse := func(name string, value json.RawMessage) int64 {
		n, ok := utils.ParseIntField(value)
		if ok {
			return n
		}
		if v := bytes.TrimSpace(value); len(v) == 0 || bytes.Equal(v, []byte("null")) {
			fields[name] = "This field is required"
		} else {
			fields[name] = "Must be an integer"
		}
		return 0
	}

	sessionID := parse("movie_session", ticket.MovieSession)
	row := parse("row", ticket.Row)
	seat := parse("seat", ticket.Seat)
	if len(fields) > 0 {
		return SeatRequest{}, fields
	}

	return SeatRequest{
		MovieSessionID: sessionID,
		Row:            clampInt(row),
		Seat:           clampInt(seat),
	}, nil
}

// clampInt keeps absurd coordinates out of range instead of wrapping them
// into range on narrower ints.
func clampInt(n int64) int {
	const maxInt32, minInt32 = 1<<31 - 1, -1 << 31
	if n > maxInt32 {
		return maxInt32
	}
	if n < minInt32 {
		return minInt32
	}
	return int(n)
}

// GroupBySession splits the request by session, ordered by session id, and
// rejects it if any (session, row, seat) appears more than once. Every repeat
// occurrence is reported.
func GroupBySession(seats []SeatRequest) ([]*SessionGroup, error) {
	bySession := make(map[int64]*SessionGroup)
	seen := make(map[SeatRef]struct{}, len(seats))
	var duplicates []SeatRef

	for _, s := range seats {
		ref := s.Ref()
		if _, ok := seen[ref]; ok {
			duplicates = append(duplicates, ref)
			continue
		}
		seen[ref] = struct{}{}

		g, ok := bySession[s.MovieSessionID]
		if !ok {
			g = &SessionGroup{SessionID: s.MovieSessionID}
			bySession[s.MovieSessionID] = g
		}
		g.Seats = append(g.Seats, s)
	}

	if len(duplicates) > 0 {
		return nil, &ValidationError{Kind: KindDuplicates, Seats: duplicates}
	}

	groups := make([]*SessionGroup, 0, len(bySession))
	for _, g := range bySession {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].SessionID < groups[j].SessionID })

	return groups, nil
}

// CheckBounds validates every seat against its group's hall. Out of range
// requests are reported individually with the valid range of that hall.
func CheckBounds(groups []*SessionGroup) error {
	var issues []FieldIssue
	for _, g := range groups {
		for _, s := range g.Seats {
			if fields := boundIssues(g.Hall, s); fields != nil {
				issues = append(issues, FieldIssue{Index: s.Index, Fields: fields})
			}
		}
	}

	if len(issues) == 0 {
		return nil
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].Index < issues[j].Index })
	return &ValidationError{Kind: KindOutOfBounds, Issues: issues}
}

func boundIssues(hall *entity.CinemaHall, s SeatRequest) map[string]string {
	if hall.IsValidSeat(s.Row, s.Seat) {
		return nil
	}

	fields := make(map[string]string, 2)
	if !hall.ValidRow(s.Row) {
		fields["row"] = fmt.Sprintf("Row must be within [1..%d] for this cinema hall.", hall.Rows)
	}
	if !hall.ValidSeatNumber(s.Seat) {
		fields["seat"] = fmt.Sprintf("Seat must be within [1..%d] for this cinema hall.", hall.SeatsInRow)
	}
	return fields
}
