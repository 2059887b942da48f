package model

import (
	"errors"
	"fmt"
)

type LeaveSource string

const (
	LeaveSourceZoho   LeaveSource = "ZOHO"
	LeaveSourceManual LeaveSource = "MANUAL"
)

var ErrInvalidLeavePeriod = errors.New("leave fromDate is after toDate")

// Leave is always read with its employee embedded by value.
type Leave struct {
	ID           int64       `json:"id,omitempty"`
	ZohoLeaveID  string      `json:"zohoLeaveId,omitempty"`
	Employee     Employee    `json:"employee"`
	LeaveType    string      `json:"leaveType"`
	FromDate     Date        `json:"fromDate"`
	ToDate       Date        `json:"toDate"`
	NumberOfDays float64     `json:"numberOfDays"`
	Status       string      `json:"status"`
	Reason       string      `json:"reason,omitempty"`
	Source       LeaveSource `json:"source"`
}

func (l Leave) Validate() error {
	if l.FromDate.After(l.ToDate.Time) {
		return fmt.Errorf("%w: %s > %s", ErrInvalidLeavePeriod, l.FromDate, l.ToDate)
	}
	return nil
}
