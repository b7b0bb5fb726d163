package availability

import "gymcore/internal/timewindow"

// Window is a recurring weekly range in which a trainer accepts bookings.
// DayOfWeek runs 0 = Monday to 6 = Sunday.
type Window struct {
	ID        int              `db:"id" json:"id"`
	TrainerID int              `db:"trainer_id" json:"trainer_id"`
	DayOfWeek int              `db:"day_of_week" json:"day_of_week"`
	StartTime timewindow.Clock `db:"start_time" json:"start_time" example:"09:00:00"`
	EndTime   timewindow.Clock `db:"end_time" json:"end_time" example:"17:00:00"`
}

type SetWindowRequest struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required,min=0,max=6" example:"0"`
	StartTime string `json:"start_time" binding:"required" example:"09:00"`
	EndTime   string `json:"end_time" binding:"required" example:"17:00"`
}

type UpdateWindowRequest struct {
	StartTime string `json:"start_time" binding:"required" example:"10:00"`
	EndTime   string `json:"end_time" binding:"required" example:"18:00"`
}
