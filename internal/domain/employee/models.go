package employee

import "time"

type Employee struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Image           string    `json:"image"`
	Gender          string    `json:"gender"`
	HireDate        time.Time `json:"hireDate"`
	MailAddress     string    `json:"mailAddress"`
	ZipCode         string    `json:"zipCode"`
	Address         string    `json:"address"`
	Telephone       string    `json:"telephone"`
	Salary          int       `json:"salary"`
	Characteristics string    `json:"characteristics"`
	DependentsCount int       `json:"dependentsCount"`
}
