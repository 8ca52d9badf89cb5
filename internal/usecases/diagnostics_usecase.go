package usecases

import (
	"sort"
	"strings"
	"time"

	"auto-diag.backend/internal/domain/entities"
)

// DiagnosticsUsecase implements the endpoint-specific business logic behind
// the public API. The results are rule-based and deterministic.
type DiagnosticsUsecase struct {
	now func() time.Time
}

// NewDiagnosticsUsecase creates a diagnostics usecase
func NewDiagnosticsUsecase() *DiagnosticsUsecase {
	return &DiagnosticsUsecase{now: time.Now}
}

type symptomRule struct {
	keywords []string
	cause    entities.ProbableCause
}

var symptomRules = []symptomRule{
	{
		keywords: []string{"squeal", "squeak", "brake"},
		cause: entities.ProbableCause{
			Title:       "Worn brake pads",
			Severity:    "high",
			Confidence:  0.85,
			Description: "Squealing under braking usually means the pad wear indicators are contacting the rotor.",
		},
	},
	{
		keywords: []string{"grind", "grinding"},
		cause: entities.ProbableCause{
			Title:       "Metal-on-metal brake wear",
			Severity:    "high",
			Confidence:  0.8,
			Description: "Grinding indicates pads worn through to the backing plate; rotors are likely damaged.",
		},
	},
	{
		keywords: []string{"overheat", "coolant", "temperature"},
		cause: entities.ProbableCause{
			Title:       "Cooling system fault",
			Severity:    "high",
			Confidence:  0.75,
			Description: "Overheating points to low coolant, a failed thermostat, or a leaking radiator.",
		},
	},
	{
		keywords: []string{"stall", "rough idle", "misfire"},
		cause: entities.ProbableCause{
			Title:       "Ignition or fuel delivery issue",
			Severity:    "medium",
			Confidence:  0.7,
			Description: "Stalling and rough idle commonly trace to worn spark plugs, coils, or a clogged fuel filter.",
		},
	},
	{
		keywords: []string{"smoke", "burning"},
		cause: entities.ProbableCause{
			Title:       "Oil or coolant leak onto hot components",
			Severity:    "medium",
			Confidence:  0.65,
			Description: "Smoke or burning smells often come from fluid leaking onto the exhaust manifold.",
		},
	},
	{
		keywords: []string{"check engine", "engine light"},
		cause: entities.ProbableCause{
			Title:       "Emissions sensor fault",
			Severity:    "medium",
			Confidence:  0.55,
			Description: "A steady check-engine light most frequently maps to an oxygen sensor or catalytic converter code.",
		},
	},
	{
		keywords: []string{"won't start", "wont start", "no start", "click", "battery"},
		cause: entities.ProbableCause{
			Title:       "Battery or starter failure",
			Severity:    "medium",
			Confidence:  0.75,
			Description: "Clicking without cranking points to a discharged battery, corroded terminals, or a failing starter.",
		},
	},
	{
		keywords: []string{"vibration", "shake", "wobble"},
		cause: entities.ProbableCause{
			Title:       "Wheel balance or suspension wear",
			Severity:    "low",
			Confidence:  0.6,
			Description: "Vibration at speed usually means unbalanced wheels or worn tie rod ends.",
		},
	},
}

// Diagnose maps reported symptoms to ranked probable causes
func (u *DiagnosticsUsecase) Diagnose(input *entities.DiagnoseInput) *entities.DiagnosisResult {
	var causes []entities.ProbableCause
	seen := make(map[string]bool)

	for _, symptom := range input.Symptoms {
		normalized := strings.ToLower(symptom)
		for _, rule := range symptomRules {
			for _, kw := range rule.keywords {
				if strings.Contains(normalized, kw) && !seen[rule.cause.Title] {
					seen[rule.cause.Title] = true
					causes = append(causes, rule.cause)
					break
				}
			}
		}
	}

	if len(causes) == 0 {
		causes = append(causes, entities.ProbableCause{
			Title:       "Inspection required",
			Severity:    "low",
			Confidence:  0.3,
			Description: "The reported symptoms do not match a known pattern; a hands-on inspection is recommended.",
		})
	}

	sort.SliceStable(causes, func(i, j int) bool {
		return causes[i].Confidence > causes[j].Confidence
	})

	return &entities.DiagnosisResult{
		Vehicle:        input.Vehicle,
		ProbableCauses: causes,
		Urgency:        highestSeverity(causes),
	}
}

func highestSeverity(causes []entities.ProbableCause) string {
	urgency := "low"
	for _, c := range causes {
		switch c.Severity {
		case "high":
			return "high"
		case "medium":
			urgency = "medium"
		}
	}
	return urgency
}

type costRule struct {
	keywords          []string
	partsLow, partsHi float64
	laborLow, laborHi float64
}

var costRules = []costRule{
	{[]string{"brake"}, 120, 300, 150, 300},
	{[]string{"battery"}, 120, 250, 30, 80},
	{[]string{"alternator"}, 250, 500, 150, 350},
	{[]string{"radiator", "coolant", "overheat"}, 200, 600, 200, 450},
	{[]string{"transmission"}, 1200, 3500, 500, 1200},
	{[]string{"spark", "ignition", "misfire"}, 80, 250, 100, 300},
	{[]string{"tire"}, 100, 250, 40, 100},
	{[]string{"suspension", "strut", "shock"}, 300, 700, 200, 500},
	{[]string{"exhaust", "muffler", "catalytic"}, 200, 1600, 100, 300},
}

var defaultCostRule = costRule{nil, 150, 500, 100, 400}

// EstimateRepairCost produces a parts and labor range for a described issue.
// Vehicles older than ten years carry a parts surcharge.
func (u *DiagnosticsUsecase) EstimateRepairCost(input *entities.RepairCostInput) *entities.RepairCostEstimate {
	rule := defaultCostRule
	normalized := strings.ToLower(input.Issue)
	for _, r := range costRules {
		if matchesAny(normalized, r.keywords) {
			rule = r
			break
		}
	}

	partsLow, partsHi := rule.partsLow, rule.partsHi
	if u.now().Year()-input.Vehicle.Year > 10 {
		partsLow *= 1.2
		partsHi *= 1.2
	}

	return &entities.RepairCostEstimate{
		Vehicle:  input.Vehicle,
		Issue:    input.Issue,
		PartsLow: partsLow,
		PartsHi:  partsHi,
		LaborLow: rule.laborLow,
		LaborHi:  rule.laborHi,
		TotalLow: partsLow + rule.laborLow,
		TotalHi:  partsHi + rule.laborHi,
	}
}

func matchesAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

var conditionMultipliers = map[string]float64{
	"excellent": 1.1,
	"good":      1.0,
	"fair":      0.85,
	"poor":      0.65,
}

// Valuate estimates a private-sale market value from age, mileage and
// condition. The floor is 500 USD regardless of inputs.
func (u *DiagnosticsUsecase) Valuate(input *entities.ValuationInput) *entities.ValuationResult {
	age := u.now().Year() - input.Vehicle.Year
	if age < 0 {
		age = 0
	}

	value := 32000.0
	for i := 0; i < age; i++ {
		value *= 0.87
	}

	// mileage beyond 12k miles per year of age depresses the value
	expectedMileage := age * 12000
	if excess := input.Vehicle.Mileage - expectedMileage; excess > 0 {
		value -= float64(excess) * 0.05
	}

	value *= conditionMultipliers[input.Condition]
	if value < 500 {
		value = 500
	}
	value = float64(int(value/50)) * 50 // round down to the nearest 50

	return &entities.ValuationResult{
		Vehicle:      input.Vehicle,
		Condition:    input.Condition,
		EstimatedUSD: value,
		RangeLowUSD:  float64(int(value*0.9/50)) * 50,
		RangeHighUSD: float64(int(value*1.1/50)) * 50,
	}
}

type serviceInterval struct {
	service  string
	interval int
}

var serviceIntervals = []serviceInterval{
	{"Oil and filter change", 5000},
	{"Tire rotation", 7500},
	{"Engine air filter", 15000},
	{"Brake fluid flush", 30000},
	{"Coolant flush", 50000},
	{"Spark plug replacement", 60000},
	{"Transmission fluid service", 60000},
	{"Timing belt inspection", 90000},
}

// MaintenanceSchedule lists each service with its next due mileage. A service
// is flagged overdue once at least 80 percent of its interval has elapsed
// since the last assumed service point.
func (u *DiagnosticsUsecase) MaintenanceSchedule(input *entities.MaintenanceInput) []entities.MaintenanceItem {
	items := make([]entities.MaintenanceItem, 0, len(serviceIntervals))
	for _, si := range serviceIntervals {
		sinceLast := input.Vehicle.Mileage % si.interval
		items = append(items, entities.MaintenanceItem{
			Service:   si.service,
			DueAtMile: (input.Vehicle.Mileage/si.interval + 1) * si.interval,
			Overdue:   sinceLast*10 >= si.interval*8,
		})
	}
	return items
}

var providerDirectory = []entities.Provider{
	{Name: "Precision Auto Care", Rating: 4.8, Services: []string{"diagnostics", "brakes", "engine"}, Phone: "555-0142"},
	{Name: "Summit Transmission & Repair", Rating: 4.6, Services: []string{"transmission", "diagnostics"}, Phone: "555-0178"},
	{Name: "Greenway Tire & Alignment", Rating: 4.5, Services: []string{"tires", "suspension", "alignment"}, Phone: "555-0103"},
	{Name: "Ironside Collision & Mechanical", Rating: 4.2, Services: []string{"body", "brakes", "suspension"}, Phone: "555-0166"},
	{Name: "QuickLane Express Service", Rating: 3.9, Services: []string{"oil change", "tires", "brakes"}, Phone: "555-0131"},
}

// Providers returns shops near a zip code, optionally filtered by service,
// ordered by rating
func (u *DiagnosticsUsecase) Providers(zip, service string) []entities.Provider {
	normalized := strings.ToLower(service)
	results := make([]entities.Provider, 0, len(providerDirectory))
	for _, p := range providerDirectory {
		if normalized != "" && !providerOffers(p, normalized) {
			continue
		}
		p.Zip = zip
		results = append(results, p)
	}
	return results
}

func providerOffers(p entities.Provider, service string) bool {
	for _, s := range p.Services {
		if strings.Contains(s, service) {
			return true
		}
	}
	return false
}
