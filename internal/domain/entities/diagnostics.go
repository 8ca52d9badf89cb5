package entities

import "strconv"

// Vehicle identifies the car a public-API request is about
type Vehicle struct {
	Make    string `json:"make" binding:"required"`
	Model   string `json:"model" binding:"required"`
	Year    int    `json:"year" binding:"required,gte=1950"`
	Mileage int    `json:"mileage" binding:"gte=0"`
}

// String returns a compact "year make model" label for usage logs
func (v Vehicle) String() string {
	if v.Make == "" && v.Model == "" {
		return ""
	}
	label := v.Make + " " + v.Model
	if v.Year > 0 {
		return strconv.Itoa(v.Year) + " " + label
	}
	return label
}

// DiagnoseInput is the payload of the diagnosis endpoint
type DiagnoseInput struct {
	Vehicle  Vehicle  `json:"vehicle" binding:"required"`
	Symptoms []string `json:"symptoms" binding:"required,min=1"`
}

// ProbableCause is one ranked hypothesis in a diagnosis
type ProbableCause struct {
	Title       string  `json:"title"`
	Severity    string  `json:"severity"` // low, medium, high
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description"`
}

// DiagnosisResult is the diagnosis endpoint response payload
type DiagnosisResult struct {
	Vehicle        Vehicle         `json:"vehicle"`
	ProbableCauses []ProbableCause `json:"probableCauses"`
	Urgency        string          `json:"urgency"`
}

// RepairCostInput is the payload of the repair-cost endpoint
type RepairCostInput struct {
	Vehicle Vehicle `json:"vehicle" binding:"required"`
	Issue   string  `json:"issue" binding:"required"`
}

// RepairCostEstimate is a parts+labor range in USD
type RepairCostEstimate struct {
	Vehicle  Vehicle `json:"vehicle"`
	Issue    string  `json:"issue"`
	PartsLow float64 `json:"partsLowUsd"`
	PartsHi  float64 `json:"partsHighUsd"`
	LaborLow float64 `json:"laborLowUsd"`
	LaborHi  float64 `json:"laborHighUsd"`
	TotalLow float64 `json:"totalLowUsd"`
	TotalHi  float64 `json:"totalHighUsd"`
}

// ValuationInput is the payload of the valuation endpoint
type ValuationInput struct {
	Vehicle   Vehicle `json:"vehicle" binding:"required"`
	Condition string  `json:"condition" binding:"required,oneof=excellent good fair poor"`
}

// ValuationResult is an estimated private-sale market value
type ValuationResult struct {
	Vehicle      Vehicle `json:"vehicle"`
	Condition    string  `json:"condition"`
	EstimatedUSD float64 `json:"estimatedUsd"`
	RangeLowUSD  float64 `json:"rangeLowUsd"`
	RangeHighUSD float64 `json:"rangeHighUsd"`
}

// MaintenanceInput is the payload of the maintenance-schedule endpoint
type MaintenanceInput struct {
	Vehicle Vehicle `json:"vehicle" binding:"required"`
}

// MaintenanceItem is one upcoming service interval
type MaintenanceItem struct {
	Service   string `json:"service"`
	DueAtMile int    `json:"dueAtMileage"`
	Overdue   bool   `json:"overdue"`
}

// Provider is a repair shop returned by the provider search
type Provider struct {
	Name     string   `json:"name"`
	Zip      string   `json:"zip"`
	Rating   float64  `json:"rating"`
	Services []string `json:"services"`
	Phone    string   `json:"phone"`
}
