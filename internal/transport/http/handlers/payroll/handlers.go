package payrollhandler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"epms/internal/domain/money"
	"epms/internal/domain/payroll"
	"epms/internal/transport/http/api"
	"epms/internal/transport/http/middleware"
	"epms/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
}

func NewHandler(service *payroll.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/departments", func(r chi.Router) {
		r.Get("/", h.handleListDepartments)
		r.Post("/", h.handleCreateDepartment)
		r.Route("/{departmentCode}", func(r chi.Router) {
			r.Put("/", h.handleUpdateDepartment)
			r.Delete("/", h.handleDeleteDepartment)
		})
	})
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleListEmployees)
		r.Post("/", h.handleCreateEmployee)
		r.Route("/{employeeNumber}", func(r chi.Router) {
			r.Get("/", h.handleGetEmployee)
			r.Put("/", h.handleUpdateEmployee)
			r.Delete("/", h.handleDeleteEmployee)
		})
	})
	r.Route("/salaries", func(r chi.Router) {
		r.Get("/", h.handleListSalaries)
		r.Post("/", h.handleCreateSalary)
		r.Route("/{salaryID}", func(r chi.Router) {
			r.Put("/", h.handleUpdateSalary)
			r.Delete("/", h.handleDeleteSalary)
		})
	})
}

type departmentPayload struct {
	DepartmentCode string       `json:"departmentCode"`
	DepartmentName string       `json:"departmentName"`
	GrossSalary    money.Amount `json:"grossSalary"`
}

type employeePayload struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Position       string `json:"position"`
	Address        string `json:"address"`
	Telephone      string `json:"telephone"`
	Gender         string `json:"gender"`
	HiredDate      string `json:"hiredDate"`
	DepartmentCode string `json:"departmentCode"`
}

type salaryPayload struct {
	EmployeeNumber int64        `json:"employeeNumber"`
	GrossSalary    money.Amount `json:"grossSalary"`
	TotalDeduction money.Amount `json:"totalDeduction"`
	NetSalary      money.Amount `json:"netSalary"`
	Month          string       `json:"month"`
}

func (h *Handler) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload departmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		shared.DecodeError(w, requestID)
		return
	}

	created, err := h.Service.CreateDepartment(r.Context(), payroll.Department{
		DepartmentCode: payload.DepartmentCode,
		DepartmentName: payload.DepartmentName,
		GrossSalary:    payload.GrossSalary,
	})
	if err != nil {
		shared.WriteDomainError(w, requestID, err)
		return
	}

	api.Created(w, created, requestID)
}

func (h *Handler) handleListDepartments(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	departments, err := h.Service.ListDepartments(r.Context())
	if err != nil {
		shared.WriteDomainError(w, requestID, err)
		return
	}
	if departments == nil {
		departments = []payroll.Department{}
	}

	api.Success(w, departments, requestID)
}

func (h *Handler) handleUpdateDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	code := chi.URLParam(r, "departmentCode")

	var payload departmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		shared.DecodeError(w, requestID)
		return
	}

	err := h.Service.UpdateDepartment(r.Context(), code, payroll.Department{
		DepartmentName: payload.DepartmentName,
		GrossSalary:    payload.GrossSalary,
	})
	if err != nil {
		shared.WriteDomainError(w, requestID, err)
		return
	}

	api.Success(w, map[string]any{"message": "department updated successfully"}, requestID)
}

func (h *Handler) handleDeleteDepartment(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	if err := h.Service.DeleteDepartment(r.Context(), chi.URLParam(r, "departmentCode")); err != nil {
		shared.WriteDomainError(w, requestID, err)
		return
	}

	api.Success(w, map[string]any{"message": "department deleted successfully"}, requestID)
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		shared.DecodeError(w, requestID)
		return
	}

	created, err := h.Service.CreateEmployee(r.Context(), payroll.Employee{
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		Position:       payload.Position,
		Address:        payload.Address,
		Telephone:      payload.Telephone,
		Gender:         payload.Gender,
		HiredDate:      payload.HiredDate,
		DepartmentCode: payload.DepartmentCode,
	})
	if err != nil {
		shared.WriteDomainError(w, requestID, err)
		return
	}

	api.Created(w, created, requestID)
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	employees, err := h.Service.ListEmployees(r.Context())
	if err != nil {
		shared.WriteDomainError(w, requestID, err)
		return
	}
	if employees == nil {
		employees = []payroll.Employee{}
	}

	api.Success(w, employees, requestID)
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	number, ok := pathID(w, r, "employeeNumber", requestID)
	if !ok {
		return
	}

	employee, err := h.Service.GetEmployee(r.Context(), number)
	if err != nil {
		shared.WriteDomainError(w, requestID, err)
		return
	}

	api.Success(w, employee, requestID)
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	number, ok := pathID(w, r, "employeeNumber", requestID)
	if !ok {
		return
	}

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		shared.DecodeError(w, requestID)
		return
	}

	err := h.Service.UpdateEmployee(r.Context(), number, payroll.Employee{
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		Position:       payload.Position,
		Address:        payload.Address,
		Telephone:      payload.Telephone,
		Gender:         payload.Gender,
		HiredDate:      payload.HiredDate,
		DepartmentCode: payload.DepartmentCode,
	})
	if err != nil {
		shared.WriteDomainError(w, requestID, err)
		return
	}

	api.Success(w, map[string]any{"message": "employee updated successfully"}, requestID)
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	number, ok := pathID(w, r, "employeeNumber", requestID)
	if !ok {
		return
	}

	if err := h.Service.DeleteEmployee(r.Context(), number); err != nil {
		shared.WriteDomainError(w, requestID, err)
		return
	}

	api.Success(w, map[string]any{"message": "employee deleted successfully"}, requestID)
}

func (h *Handler) handleCreateSalary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload salaryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		shared.DecodeError(w, requestID)
		return
	}

	created, err := h.Service.CreateSalaryRecord(r.Context(), payroll.SalaryRecord{
		EmployeeNumber: payload.EmployeeNumber,
		GrossSalary:    payload.GrossSalary,
		TotalDeduction: payload.TotalDeduction,
		NetSalary:      payload.NetSalary,
		Month:          payload.Month,
	})
	if err != nil {
		shared.WriteDomainError(w, requestID, err)
		return
	}

	api.Created(w, created, requestID)
}

func (h *Handler) handleListSalaries(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	records, err := h.Service.ListSalaryRecords(r.Context())
	if err != nil {
		shared.WriteDomainError(w, requestID, err)
		return
	}
	if records == nil {
		records = []payroll.SalaryRecord{}
	}

	api.Success(w, records, requestID)
}

func (h *Handler) handleUpdateSalary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := pathID(w, r, "salaryID", requestID)
	if !ok {
		return
	}

	var payload salaryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		shared.DecodeError(w, requestID)
		return
	}

	updated, err := h.Service.UpdateSalaryRecord(r.Context(), id, payroll.SalaryRecord{
		GrossSalary:    payload.GrossSalary,
		TotalDeduction: payload.TotalDeduction,
		NetSalary:      payload.NetSalary,
		Month:          payload.Month,
	})
	if err != nil {
		shared.WriteDomainError(w, requestID, err)
		return
	}

	api.Success(w, updated, requestID)
}

func (h *Handler) handleDeleteSalary(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, ok := pathID(w, r, "salaryID", requestID)
	if !ok {
		return
	}

	if err := h.Service.DeleteSalaryRecord(r.Context(), id); err != nil {
		shared.WriteDomainError(w, requestID, err)
		return
	}

	api.Success(w, map[string]any{"message": "salary record deleted successfully"}, requestID)
}

func pathID(w http.ResponseWriter, r *http.Request, param, requestID string) (int64, bool) {
	value, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || value <= 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_path", param+" must be a positive integer", requestID)
		return 0, false
	}
	return value, true
}
