package config

import (
	"fmt"
	"net/mail"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/cgfgestion/investment-simulator/internal/calculation"
	"github.com/cgfgestion/investment-simulator/internal/domain"
)

// Default simulation inputs offered to a new client.
const (
	DefaultInitialCapital      = 100_000
	DefaultMonthlyContribution = 50_000
	DefaultTargetValue         = 10_000_000
	DefaultAnnualRate          = 5.0
	DefaultHorizonYears        = 10
)

// Countries lists the client countries offered in the advisor form.
var Countries = []string{
	"Côte d'Ivoire",
	"Bénin",
	"Burkina Faso",
	"Guinée-Bissau",
	"Mali",
	"Niger",
	"Sénégal",
	"Togo",
}

// DefaultParameters returns the default simulation inputs.
func DefaultParameters() domain.Parameters {
	return domain.Parameters{
		InitialCapital:      DefaultInitialCapital,
		MonthlyContribution: DefaultMonthlyContribution,
		TargetValue:         DefaultTargetValue,
		AnnualRate:          DefaultAnnualRate,
		HorizonYears:        DefaultHorizonYears,
	}
}

// InputParser handles parsing of simulation files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads simulations from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a simulation file already in memory.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if c := config.Client.Country; c != "" && !slices.Contains(Countries, c) {
		return fmt.Errorf("client country %q is not supported", c)
	}
	for _, addr := range []struct{ field, value string }{
		{"client email", config.Client.Email},
		{"advisor email", config.Client.AdvisorEmail},
	} {
		if addr.value == "" {
			continue
		}
		if _, err := mail.ParseAddress(addr.value); err != nil {
			return fmt.Errorf("%s %q is not a valid address", addr.field, addr.value)
		}
	}

	if len(config.Simulations) == 0 {
		return fmt.Errorf("no simulations provided")
	}

	seen := make(map[string]bool, len(config.Simulations))
	for i := range config.Simulations {
		sim := &config.Simulations[i]
		if sim.Name == "" {
			return fmt.Errorf("simulation %d: name is required", i)
		}
		if seen[sim.Name] {
			return fmt.Errorf("simulation %q is defined more than once", sim.Name)
		}
		seen[sim.Name] = true

		if err := ip.validateSimulation(sim); err != nil {
			return fmt.Errorf("simulation %q validation failed: %w", sim.Name, err)
		}
	}

	for i, sw := range config.Sweeps {
		if config.SimulationByName(sw.Simulation) == nil {
			return fmt.Errorf("sweep %d: unknown simulation %q", i, sw.Simulation)
		}
		switch sw.Kind {
		case domain.SweepHorizon, domain.SweepRate, domain.SweepContribution:
		default:
			return fmt.Errorf("sweep %d: kind must be 'horizon', 'rate', or 'contribution'", i)
		}
	}

	return nil
}

// validateSimulation checks the mode and the four parameters it takes as input.
func (ip *InputParser) validateSimulation(sim *domain.Simulation) error {
	mode, err := domain.ParseMode(sim.Mode)
	if err != nil {
		return err
	}
	sim.Mode = string(mode)

	if err := calculation.ValidateParameters(mode, sim.Parameters); err != nil {
		return err
	}
	if sim.Parameters.InflationRate < calculation.MinAnnualRate {
		return fmt.Errorf("inflation rate cannot be less than -100%%")
	}
	return nil
}

// CreateExampleConfiguration creates an example simulation file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	base := DefaultParameters()

	horizon := base
	horizon.HorizonYears = 0

	contribution := base
	contribution.MonthlyContribution = 0

	return &domain.Configuration{
		Client: domain.ClientInfo{
			Name:    "Example Client",
			Advisor: "Sales Representative",
			Country: "Côte d'Ivoire",
		},
		Simulations: []domain.Simulation{
			{Name: "Final value", Mode: string(domain.ModeFutureValue), Parameters: base},
			{Name: "Contribution for target", Mode: string(domain.ModeMonthlyContribution), Parameters: contribution},
			{Name: "Time to target", Mode: string(domain.ModeHorizon), Parameters: horizon},
		},
		Sweeps: []domain.SweepRequest{
			{Simulation: "Final value", Kind: domain.SweepRate},
			{Simulation: "Final value", Kind: domain.SweepHorizon},
		},
	}
}

// SaveConfiguration writes a simulation file as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
