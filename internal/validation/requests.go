package validation

import (
	"encoding/json"

	"workclock/internal/services"
)

// Time entry actions.
const (
	ActionCheckIn  = "check_in"
	ActionCheckOut = "check_out"
)

// TimeEntryRequest is the body of a check-in or check-out.
type TimeEntryRequest struct {
	Action string `json:"action" validate:"required,oneof=check_in check_out"`
	UserID string `json:"userId" validate:"omitempty,userid"`
}

// UserQuery carries the optional userId query parameter.
type UserQuery struct {
	UserID string `form:"userId" validate:"omitempty,userid"`
}

// CalendarQuery is the query of a calendar request. Start and end are RFC
// 3339 instants or day keys; either may be left open.
type CalendarQuery struct {
	UserID string `form:"userId" validate:"omitempty,userid"`
	Start  string `form:"start" validate:"omitempty,daybound"`
	End    string `form:"end" validate:"omitempty,daybound"`
	Fill   bool   `form:"fill"`
}

// SettingsRequest saves a settings document.
type SettingsRequest struct {
	UserID   string          `json:"userId" validate:"omitempty,userid"`
	Settings json.RawMessage `json:"settings" validate:"required"`
}

// ProfileRequest saves a profile document.
type ProfileRequest struct {
	UserID  string          `json:"userId" validate:"omitempty,userid"`
	Profile json.RawMessage `json:"profile" validate:"required"`
}

// Check validates a request struct and returns an application validation
// error on failure.
func (v *Validator) Check(req interface{}) error {
	if err := v.Struct(req); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			return ve.AsAppError()
		}
		return err
	}
	return nil
}

// CalendarRange validates q and converts its bounds to a day range.
func (v *Validator) CalendarRange(q CalendarQuery) (services.DateRange, error) {
	if err := v.Check(q); err != nil {
		return services.DateRange{}, err
	}

	var r services.DateRange
	if q.Start != "" {
		r.Start, _ = v.DayKeyFor(q.Start)
	}
	if q.End != "" {
		r.End, _ = v.DayKeyFor(q.End)
	}

	if r.Bounded() && r.Start > r.End {
		ve := NewValidationError()
		ve.AddInvalidRangeError("start", q.Start, "start must not be after end")
		return services.DateRange{}, ve.AsAppError()
	}
	if q.Fill && !r.Bounded() {
		ve := NewValidationError()
		if r.Start == "" {
			ve.AddRequiredError("start")
		}
		if r.End == "" {
			ve.AddRequiredError("end")
		}
		return services.DateRange{}, ve.AsAppError()
	}
	return r, nil
}
