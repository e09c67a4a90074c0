package dto

import (
	"encoding/json"
	"time"

	"github.com/reservaa/hall-booking-service/internal/models"
	"gorm.io/datatypes"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

type FacultyResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	CollegeID  string `json:"college_id"`
	Avatar     string `json:"avatar,omitempty"`
}

type AuthResponse struct {
	Token   string          `json:"token"`
	Faculty FacultyResponse `json:"faculty"`
}

type BookingResponse struct {
	ID                     uint                    `json:"id"`
	BookingCode            string                  `json:"booking_code"`
	HallName               string                  `json:"hall_name"`
	HallCapacity           int                     `json:"hall_capacity"`
	BookingDate            string                  `json:"booking_date"`
	StartTime              string                  `json:"start_time"`
	EndTime                string                  `json:"end_time"`
	Purpose                string                  `json:"purpose"`
	Department             string                  `json:"department"`
	AdditionalRequirements string                  `json:"additional_requirements,omitempty"`
	ACPreference           string                  `json:"ac_preference"`
	Status                 models.BookingStatus    `json:"status"`
	EventStatus            string                  `json:"event_status"`
	IsPriorityRequest      bool                    `json:"is_priority_request"`
	PriorityReason         string                  `json:"priority_reason,omitempty"`
	AdminNotes             string                  `json:"admin_notes,omitempty"`
	RescheduledTo          *RescheduleInfoResponse `json:"rescheduled_to,omitempty"`
	RescheduleReason       string                  `json:"reschedule_reason,omitempty"`
	CreatedAt              time.Time               `json:"created_at"`
	Faculty                *FacultyResponse        `json:"faculty,omitempty"`
}

type RescheduleInfoResponse struct {
	HallName  string `json:"hall_name"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// CollisionResponse is the 409 payload for a rejected submission. For approved
// conflicts CanRequestPriority invites the caller to resubmit with the
// priority flag set.
type CollisionResponse struct {
	Message            string            `json:"message"`
	Clash              bool              `json:"clash"`
	Conflicts          []BookingResponse `json:"conflicts"`
	CanRequestPriority bool              `json:"can_request_priority"`
}

// PriorityRequestResponse acknowledges a filed priority request along with the
// approved bookings it would displace.
type PriorityRequestResponse struct {
	Message   string            `json:"message"`
	Booking   BookingResponse   `json:"booking"`
	Conflicts []BookingResponse `json:"conflicts"`
}

type HallResponse struct {
	ID           uint                `json:"id"`
	Name         string              `json:"name"`
	Type         string              `json:"type"`
	Capacity     int                 `json:"capacity"`
	Location     string              `json:"location"`
	Description  string              `json:"description,omitempty"`
	Facilities   []string            `json:"facilities"`
	Amenities    []string            `json:"amenities"`
	Images       []string            `json:"images"`
	BookingRules models.BookingRules `json:"booking_rules"`
	IsActive     bool                `json:"is_active"`
}

type WorkshopResponse struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Date        string           `json:"date"`
	Organizer   *FacultyResponse `json:"organizer,omitempty"`
}

func ToFacultyResponse(f *models.Faculty) FacultyResponse {
	return FacultyResponse{
		ID:         f.ID,
		Name:       f.Name,
		Email:      f.Email,
		Department: f.Department,
		CollegeID:  f.CollegeID,
		Avatar:     f.Avatar,
	}
}

func ToBookingResponse(b *models.Booking, now time.Time) BookingResponse {
	resp := BookingResponse{
		ID:                     b.ID,
		BookingCode:            b.BookingCode,
		HallName:               b.HallName,
		HallCapacity:           b.HallCapacity,
		BookingDate:            b.BookingDate.Format(DateLayout),
		StartTime:              b.StartTime,
		EndTime:                b.EndTime,
		Purpose:                b.Purpose,
		Department:             b.Department,
		AdditionalRequirements: b.AdditionalRequirements,
		ACPreference:           b.ACPreference,
		Status:                 b.Status,
		EventStatus:            models.EventStatusFor(b.BookingDate, now),
		IsPriorityRequest:      b.IsPriorityRequest,
		PriorityReason:         b.PriorityReason,
		AdminNotes:             b.AdminNotes,
		RescheduleReason:       b.RescheduleReason,
		CreatedAt:              b.CreatedAt,
	}
	if b.RescheduledTo.IsComplete() {
		resp.RescheduledTo = &RescheduleInfoResponse{
			HallName:  *b.RescheduledTo.HallName,
			Date:      b.RescheduledTo.Date.Format(DateLayout),
			StartTime: *b.RescheduledTo.StartTime,
			EndTime:   *b.RescheduledTo.EndTime,
		}
	}
	if b.Faculty != nil {
		f := ToFacultyResponse(b.Faculty)
		resp.Faculty = &f
	}
	return resp
}

func ToBookingResponses(bookings []models.Booking, now time.Time) []BookingResponse {
	resp := make([]BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = ToBookingResponse(&bookings[i], now)
	}
	return resp
}

func ToHallResponse(h *models.Hall) HallResponse {
	return HallResponse{
		ID:           h.ID,
		Name:         h.Name,
		Type:         h.Type,
		Capacity:     h.Capacity,
		Location:     h.Location,
		Description:  h.Description,
		Facilities:   jsonStrings(h.Facilities),
		Amenities:    jsonStrings(h.Amenities),
		Images:       jsonStrings(h.Images),
		BookingRules: h.BookingRules,
		IsActive:     h.IsActive,
	}
}

func ToHallResponses(halls []models.Hall) []HallResponse {
	resp := make([]HallResponse, len(halls))
	for i := range halls {
		resp[i] = ToHallResponse(&halls[i])
	}
	return resp
}

func ToWorkshopResponse(w *models.Workshop) WorkshopResponse {
	resp := WorkshopResponse{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Date:        w.Date.Format(DateLayout),
	}
	if w.Organizer != nil {
		o := ToFacultyResponse(w.Organizer)
		resp.Organizer = &o
	}
	return resp
}

func ToWorkshopResponses(workshops []models.Workshop) []WorkshopResponse {
	resp := make([]WorkshopResponse, len(workshops))
	for i := range workshops {
		resp[i] = ToWorkshopResponse(&workshops[i])
	}
	return resp
}

func jsonStrings(raw datatypes.JSON) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	_ = json.Unmarshal(raw, &out)
	return out
}
