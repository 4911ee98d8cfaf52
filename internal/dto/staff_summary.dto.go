package dto

import "github.com/BruksfildServices01/shift-scheduler/internal/models"

type StaffUserDTO struct {
	models.User
	ShiftsCount  int `json:"shifts_count"`
	ClientsCount int `json:"clients_count"`
}

type ServiceUsageDTO struct {
	models.Service
	Count int `json:"count"`
}

// StaffSummaryDTO is the workload overview of every staff user over a period.
type StaffSummaryDTO struct {
	Users            []StaffUserDTO    `json:"users"`
	AllShiftsCount   int               `json:"all_shifts_count"`
	AllClientsCount  int               `json:"all_clients_count"`
	AllServicesCount int               `json:"all_services_count"`
	TodayService     []ServiceUsageDTO `json:"today_service"`
}
