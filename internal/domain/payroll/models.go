package payroll

import (
	"time"

	"epms/internal/domain/money"
)

type Department struct {
	DepartmentCode string       `json:"departmentCode"`
	DepartmentName string       `json:"departmentName"`
	GrossSalary    money.Amount `json:"grossSalary"`
}

type Employee struct {
	EmployeeNumber int64     `json:"employeeNumber"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Position       string    `json:"position"`
	Address        string    `json:"address,omitempty"`
	Telephone      string    `json:"telephone,omitempty"`
	Gender         string    `json:"gender,omitempty"`
	HiredDate      string    `json:"hiredDate,omitempty"`
	DepartmentCode string    `json:"departmentCode,omitempty"`
	DepartmentName string    `json:"departmentName,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitzero"`
	UpdatedAt      time.Time `json:"updatedAt,omitzero"`
}

type SalaryRecord struct {
	ID             int64        `json:"id"`
	EmployeeNumber int64        `json:"employeeNumber"`
	GrossSalary    money.Amount `json:"grossSalary"`
	TotalDeduction money.Amount `json:"totalDeduction"`
	NetSalary      money.Amount `json:"netSalary"`
	Month          string       `json:"month"`
	CreatedAt      time.Time    `json:"createdAt,omitzero"`

	// Joined employee and department context, populated on reads.
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	Position       string `json:"position,omitempty"`
	DepartmentName string `json:"departmentName,omitempty"`
}
