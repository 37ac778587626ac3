package domain

// ClientInfo identifies who a simulation is prepared for and by whom.
type ClientInfo struct {
	Name         string `yaml:"name" json:"name"`
	Email        string `yaml:"email" json:"email"`
	Advisor      string `yaml:"advisor" json:"advisor"`
	AdvisorEmail string `yaml:"advisor_email" json:"advisor_email"`
	Country      string `yaml:"country" json:"country"`
}

// Simulation is one named request to the engine.
type Simulation struct {
	Name       string     `yaml:"name" json:"name"`
	Mode       string     `yaml:"mode" json:"mode"`
	Parameters Parameters `yaml:"parameters" json:"parameters"`
}

// SweepRequest asks for a sensitivity table around a simulation's parameters.
// Empty Values selects the default variations for the kind.
type SweepRequest struct {
	Simulation string    `yaml:"simulation" json:"simulation"`
	Kind       SweepKind `yaml:"kind" json:"kind"`
	Values     []float64 `yaml:"values,omitempty" json:"values,omitempty"`
}

// Configuration is the top-level simulation file.
type Configuration struct {
	Client      ClientInfo     `yaml:"client" json:"client"`
	Simulations []Simulation   `yaml:"simulations" json:"simulations"`
	Sweeps      []SweepRequest `yaml:"sweeps,omitempty" json:"sweeps,omitempty"`
}

// SimulationByName returns the named simulation, or nil.
func (c *Configuration) SimulationByName(name string) *Simulation {
	for i := range c.Simulations {
		if c.Simulations[i].Name == name {
			return &c.Simulations[i]
		}
	}
	return nil
}
