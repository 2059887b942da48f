package model

type Employee struct {
	ID              int64  `json:"id,omitempty"`
	EmployeeID      string `json:"employeeId"`
	TrackwickID     string `json:"trackwickId,omitempty"`
	FullName        string `json:"fullName"`
	ContactNo       int64  `json:"contactNo"`
	Department      string `json:"department"`
	Destination     string `json:"destination,omitempty"`
	ReportingToID   *int64 `json:"reportingToId,omitempty"`
	EmailID         string `json:"emailId,omitempty"`
	ZohoIDAvailable bool   `json:"zohoIdAvailable"`
	Resigned        bool   `json:"resigned"`
	ResignedDate    *Date  `json:"resignedDate,omitempty"`
}

// ResignedOn returns the resignation date, or nil when the employee has not resigned
func (e Employee) ResignedOn() *Date {
	if !e.Resigned {
		return nil
	}
	return e.ResignedDate
}

type Department struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

var departments = []Department{
	{Name: "Engineering", Value: "ENGINEERING"},
	{Name: "Human Resources", Value: "HR"},
	{Name: "Finance", Value: "FINANCE"},
	{Name: "Sales", Value: "SALES"},
	{Name: "Marketing", Value: "MARKETING"},
	{Name: "Operations", Value: "OPERATIONS"},
}

// Departments returns the department options offered when editing an employee
func Departments() []Department {
	res := make([]Department, len(departments))
	copy(res, departments)
	return res
}
