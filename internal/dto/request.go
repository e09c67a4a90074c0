package dto

// DateLayout is the wire format for booking and workshop dates.
const DateLayout = "2006-01-02"

type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department"`
	CollegeID  string `json:"college_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name       *string `json:"name"`
	Department *string `json:"department"`
	Avatar     *string `json:"avatar"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

type CreateBookingRequest struct {
	HallName               string `json:"hall_name"`
	BookingDate            string `json:"booking_date"`
	StartTime              string `json:"start_time"`
	EndTime                string `json:"end_time"`
	Purpose                string `json:"purpose"`
	Department             string `json:"department"`
	AdditionalRequirements string `json:"additional_requirements"`
	ACPreference           string `json:"ac_preference"`
	IsPriorityRequest      bool   `json:"is_priority_request"`
	PriorityReason         string `json:"priority_reason"`
}

// RescheduleInfo is the optional concrete slot the admin picked for the
// primary displaced booking when approving a priority request.
type RescheduleInfo struct {
	HallName  string `json:"hall_name"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type AdminDecisionRequest struct {
	Status         string          `json:"status"`
	AdminNotes     *string         `json:"admin_notes"`
	RescheduleInfo *RescheduleInfo `json:"reschedule_info"`
}

type CreateHallRequest struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Capacity    int      `json:"capacity"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Facilities  []string `json:"facilities"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

type CreateWorkshopRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}
